// Package ranking orders scored architectures and selects the top entries.
package ranking

import (
	"sort"

	"github.com/okian/archrec/internal/domain/model"
)

// DefaultK is the number of recommendations returned per request.
const DefaultK = 3

// Entry is one ranked architecture.
type Entry struct {
	Rank  int
	ID    model.ArchitectureID
	Score int
}

// TopK orders ids by descending score and returns the first k entries.
// ids must be in catalog order: equal scores keep that order, so the result
// never depends on map iteration. Ids missing from scores count as zero.
// k larger than len(ids) returns every entry; k < 1 returns none.
func TopK(ids []model.ArchitectureID, scores map[model.ArchitectureID]int, k int) []Entry {
	if k < 1 || len(ids) == 0 {
		return nil
	}

	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{ID: id, Score: scores[id]}
	}

	sortEntries(entries)
	assignRanksWithTies(entries)

	if k < len(entries) {
		entries = entries[:k]
	}
	return entries
}

// sortEntries sorts by score descending. The sort is stable, so ties keep
// their catalog position.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// assignRanksWithTies assigns consecutive ranks; entries with the same score
// share a rank and the next distinct score gets the next rank.
func assignRanksWithTies(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameScoreCount := 1
		for j := i + 1; j < len(entries) && entries[j].Score == entries[i].Score; j++ {
			entries[j].Rank = currentRank
			sameScoreCount++
		}

		currentRank++
		i += sameScoreCount - 1
	}
}
