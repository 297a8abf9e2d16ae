package questionnaire

// Category names the requirement a question feeds.
type Category string

// Question categories in presentation order.
const (
	CategoryTraffic     Category = "traffic"
	CategoryComplexity  Category = "complexity"
	CategoryTeam        Category = "team"
	CategoryScalability Category = "scalability"
	CategoryBudget      Category = "budget"
	CategorySecurity    Category = "security"
	CategoryMaintenance Category = "maintenance"
	CategoryDeployment  Category = "deployment"
)

func defaultQuestions() []Question {
	return []Question{
		{
			ID: 1, Question: "What is your expected user traffic?", Type: "select", Required: true, Category: CategoryTraffic,
			Options: []Option{
				{Value: "low", Label: "Low (< 1,000 users/day)"},
				{Value: "medium", Label: "Medium (1,000 - 10,000 users/day)"},
				{Value: "high", Label: "High (> 10,000 users/day)"},
				{Value: "variable", Label: "Variable/Unpredictable"},
			},
		},
		{
			ID: 2, Question: "What is the complexity of your application?", Type: "select", Required: true, Category: CategoryComplexity,
			Options: []Option{
				{Value: "low", Label: "Simple (Basic CRUD operations)"},
				{Value: "medium", Label: "Moderate (Multiple features, integrations)"},
				{Value: "high", Label: "Complex (Advanced business logic, multiple systems)"},
			},
		},
		{
			ID: 3, Question: "What is your team size?", Type: "select", Required: true, Category: CategoryTeam,
			Options: []Option{
				{Value: "small", Label: "Small (1-3 developers)"},
				{Value: "medium", Label: "Medium (4-8 developers)"},
				{Value: "large", Label: "Large (8+ developers)"},
			},
		},
		{
			ID: 4, Question: "What are your scalability requirements?", Type: "select", Required: true, Category: CategoryScalability,
			Options: []Option{
				{Value: "low", Label: "Low (No significant growth expected)"},
				{Value: "medium", Label: "Medium (Moderate growth expected)"},
				{Value: "high", Label: "High (Rapid growth expected)"},
			},
		},
		{
			ID: 5, Question: "What is your budget constraint?", Type: "select", Required: true, Category: CategoryBudget,
			Options: []Option{
				{Value: "low", Label: "Low (Limited budget)"},
				{Value: "medium", Label: "Medium (Moderate budget)"},
				{Value: "high", Label: "High (Generous budget)"},
			},
		},
		{
			ID: 6, Question: "What are your security requirements?", Type: "select", Category: CategorySecurity,
			Options: []Option{
				{Value: "low", Label: "Basic (Standard security)"},
				{Value: "medium", Label: "Moderate (Enhanced security)"},
				{Value: "high", Label: "High (Enterprise-level security)"},
			},
		},
		{
			ID: 7, Question: "What are your maintenance requirements?", Type: "select", Category: CategoryMaintenance,
			Options: []Option{
				{Value: "low", Label: "Low (Minimal maintenance)"},
				{Value: "medium", Label: "Medium (Regular maintenance)"},
				{Value: "high", Label: "High (Frequent updates and maintenance)"},
			},
		},
		{
			ID: 8, Question: "What is your deployment preference?", Type: "select", Category: CategoryDeployment,
			Options: []Option{
				{Value: "simple", Label: "Simple (Single deployment)"},
				{Value: "moderate", Label: "Moderate (Multiple environments)"},
				{Value: "complex", Label: "Complex (Distributed deployment)"},
			},
		},
	}
}
