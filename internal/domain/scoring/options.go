package scoring

// Option applies a configuration option to the RuleScorer.
type Option func(*RuleScorer)

// WithRules replaces the weight table.
func WithRules(rules []Rule) Option {
	return func(s *RuleScorer) {
		if rules != nil {
			s.rules = append([]Rule(nil), rules...)
		}
	}
}

// WithBonuses replaces the cross-dimension bonus list.
func WithBonuses(bonuses []Bonus) Option {
	return func(s *RuleScorer) {
		if bonuses != nil {
			s.bonuses = append([]Bonus(nil), bonuses...)
		}
	}
}
