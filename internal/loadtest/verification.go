package loadtest

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/okian/archrec/internal/domain/model"
)

// Verify checks one successful result against the engine invariants and
// returns a description of every broken one. topK is the configured
// number of recommendations.
func Verify(res model.Result, topK int) []string {
	var out []string
	fail := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }

	if !res.Success {
		fail("result not successful: %s", res.Message)
		return out
	}
	if res.Analysis == nil {
		fail("analysis missing")
		return out
	}

	recs := res.Recommendations
	if want := min(topK, res.Analysis.TotalEvaluated); len(recs) != want {
		fail("got %d recommendations, want %d", len(recs), want)
	}
	if len(recs) == 0 {
		return out
	}
	if recs[0].Rank != 1 {
		fail("first rank is %d", recs[0].Rank)
	}
	if recs[0].Architecture.Score != res.Analysis.TopScore {
		fail("top score %d differs from analysis %d", recs[0].Architecture.Score, res.Analysis.TopScore)
	}

	for i, rec := range recs {
		a := rec.Architecture
		if a.Score < 0 {
			fail("%s has negative score %d", a.Type, a.Score)
		}
		if a.Confidence != min(max(a.Score, 0), 100) {
			fail("%s confidence %d does not match score %d", a.Type, a.Confidence, a.Score)
		}
		for _, p := range rec.DesignPatterns {
			if !slices.Contains(p.ApplicableArchitectures, a.Type) {
				fail("pattern %s not applicable to %s", p.ID, a.Type)
			}
		}
		for _, line := range rec.Reasoning {
			if line == "" {
				fail("%s has an empty reasoning line", a.Type)
			}
		}
		if i == 0 {
			continue
		}
		prev := recs[i-1]
		switch {
		case prev.Architecture.Score < a.Score:
			fail("scores not descending at position %d", i+1)
		case prev.Architecture.Score == a.Score && prev.Rank != rec.Rank:
			fail("tied scores at position %d have ranks %d and %d", i+1, prev.Rank, rec.Rank)
		case prev.Architecture.Score > a.Score && rec.Rank != prev.Rank+1:
			fail("rank at position %d is %d, want %d", i+1, rec.Rank, prev.Rank+1)
		}
	}
	return out
}

// Same reports whether two results carry identical recommendations and
// analysis.
func Same(a, b model.Result) bool {
	return a.Success == b.Success &&
		reflect.DeepEqual(a.Recommendations, b.Recommendations) &&
		reflect.DeepEqual(a.Analysis, b.Analysis)
}
