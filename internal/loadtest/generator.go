package loadtest

import (
	"math/rand/v2"

	"github.com/okian/archrec/internal/domain/model"
)

var (
	traffics    = []model.Traffic{model.TrafficLow, model.TrafficMedium, model.TrafficHigh, model.TrafficVariable}
	levels      = []model.Level{model.LevelLow, model.LevelMedium, model.LevelHigh}
	teams       = []model.TeamSize{model.TeamSmall, model.TeamMedium, model.TeamLarge}
	deployments = []model.Deployment{model.DeploymentSimple, model.DeploymentModerate, model.DeploymentComplex}
)

// Generate returns n requirement vectors drawn from a PCG source seeded
// with seed. The same seed always yields the same vectors. Optional
// dimensions are present about two thirds of the time.
func Generate(seed uint64, n int) []*model.RequirementVector {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible test data
	out := make([]*model.RequirementVector, n)
	for i := range out {
		v := &model.RequirementVector{
			UserTraffic: pick(r, traffics),
			Complexity:  pick(r, levels),
			TeamSize:    pick(r, teams),
			Scalability: pick(r, levels),
			Budget:      pick(r, levels),
		}
		if r.IntN(3) > 0 {
			v.Security = model.Ptr(pick(r, levels))
		}
		if r.IntN(3) > 0 {
			v.Maintenance = model.Ptr(pick(r, levels))
		}
		if r.IntN(3) > 0 {
			v.Deployment = model.Ptr(pick(r, deployments))
		}
		out[i] = v
	}
	return out
}

func pick[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}
