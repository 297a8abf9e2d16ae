package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okian/archrec/internal/domain/catalog"
	"github.com/okian/archrec/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const minimalYAML = `
architectures:
  - id: modular
    name: Modular Monolith
    criteria: {userTraffic: medium, complexity: medium, teamSize: medium, scalability: medium, budget: medium}
patterns:
  - id: facade
    name: Facade
    applicableArchitectures: [modular]
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	Convey("Given the embedded catalog", t, func() {
		c, err := catalog.Default(context.Background())

		Convey("Then it loads without error", func() {
			So(err, ShouldBeNil)
			So(c, ShouldNotBeNil)
		})

		Convey("And it lists four architectures in catalog order", func() {
			So(c.IDs(), ShouldResemble, []model.ArchitectureID{
				model.Monolithic, model.Microservices, model.Serverless, model.SOA,
			})
		})

		Convey("And it lists six patterns", func() {
			So(c.PatternCount(), ShouldEqual, 6)
			So(c.Patterns()[5].ID, ShouldEqual, model.PatternID("circuitBreaker"))
		})

		Convey("And the monolith criteria are all low/small", func() {
			m, err := c.Architecture(model.Monolithic)
			So(err, ShouldBeNil)
			So(m.Name, ShouldEqual, "Monolithic Architecture")
			So(m.Criteria, ShouldResemble, model.CriteriaVector{
				UserTraffic: model.TrafficLow,
				Complexity:  model.LevelLow,
				TeamSize:    model.TeamSmall,
				Scalability: model.LevelLow,
				Budget:      model.LevelLow,
			})
		})

		Convey("And repeated calls share one parsed instance", func() {
			again, _ := catalog.Default(context.Background())
			So(again, ShouldEqual, c)
		})
	})
}

func TestCatalogLookups(t *testing.T) {
	Convey("Given the embedded catalog", t, func() {
		c := catalog.MustDefault()

		Convey("When looking up an unknown architecture", func() {
			_, err := c.Architecture("mesh")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, catalog.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When looking up patterns by id", func() {
			p, err := c.Pattern("mvc")
			_, missing := c.Pattern("visitor")

			Convey("Then known ids resolve and unknown ids report not found", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Model-View-Controller (MVC)")
				So(errors.Is(missing, catalog.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When asking for microservices patterns", func() {
			got := c.PatternsFor(model.Microservices)

			Convey("Then every applicable pattern is returned in catalog order", func() {
				ids := make([]model.PatternID, len(got))
				for i, p := range got {
					ids[i] = p.ID
				}
				So(ids, ShouldResemble, []model.PatternID{"singleton", "factory", "observer", "repository", "circuitBreaker"})
			})
		})

		Convey("When a caller mutates returned profiles", func() {
			archs := c.Architectures()
			archs[0].Advantages[0] = "tampered"
			archs[0].Criteria.Budget = model.LevelHigh

			Convey("Then the catalog is unaffected", func() {
				m, _ := c.Architecture(model.Monolithic)
				So(m.Advantages[0], ShouldEqual, "Simple deployment")
				So(m.Criteria.Budget, ShouldEqual, model.LevelLow)
			})
		})

		Convey("When reading positions", func() {
			Convey("Then they follow catalog order", func() {
				So(c.Position(model.SOA), ShouldEqual, 3)
				So(c.Position("unknown"), ShouldEqual, -1)
			})
		})
	})
}

func TestParseValidation(t *testing.T) {
	Convey("Given catalog documents", t, func() {
		Convey("When the YAML is malformed", func() {
			_, err := catalog.Parse([]byte("architectures: ["))
			So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
		})

		Convey("When there are no architectures", func() {
			_, err := catalog.Parse([]byte("patterns: []"))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When an architecture id repeats", func() {
			a := model.ArchitectureProfile{ID: "x", Criteria: model.CriteriaVector{
				UserTraffic: model.TrafficLow, Complexity: model.LevelLow, TeamSize: model.TeamSmall,
				Scalability: model.LevelLow, Budget: model.LevelLow,
			}}
			_, err := catalog.New([]model.ArchitectureProfile{a, a}, nil)
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "duplicate architecture")
		})

		Convey("When a criteria value is out of its domain", func() {
			_, err := catalog.Parse([]byte(`
architectures:
  - id: x
    criteria: {userTraffic: huge, complexity: low, teamSize: small, scalability: low, budget: low}
`))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "userTraffic")
		})

		Convey("When a pattern refers to an unknown architecture", func() {
			_, err := catalog.Parse([]byte(`
architectures:
  - id: x
    criteria: {userTraffic: low, complexity: low, teamSize: small, scalability: low, budget: low}
patterns:
  - id: p
    applicableArchitectures: [y]
`))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the document is valid", func() {
			c, err := catalog.Parse([]byte(minimalYAML))
			So(err, ShouldBeNil)
			So(c.Len(), ShouldEqual, 1)
			So(len(c.PatternsFor("modular")), ShouldEqual, 1)
		})
	})
}

func TestStore(t *testing.T) {
	Convey("Given a store serving the default catalog", t, func() {
		ctx := context.Background()
		store := catalog.NewStore(catalog.MustDefault())

		Convey("When reloading from a valid file", func() {
			path := writeTemp(t, minimalYAML)
			c, err := store.Reload(ctx, path)

			Convey("Then the new snapshot is installed", func() {
				So(err, ShouldBeNil)
				So(store.Current(), ShouldEqual, c)
				So(store.Current().IDs(), ShouldResemble, []model.ArchitectureID{"modular"})
			})
		})

		Convey("When reloading from an invalid file", func() {
			before := store.Current()
			path := writeTemp(t, "architectures: []")
			_, err := store.Reload(ctx, path)

			Convey("Then the previous snapshot stays active", func() {
				So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
				So(store.Current(), ShouldEqual, before)
			})
		})

		Convey("When reloading from a missing file", func() {
			_, err := store.Reload(ctx, "/non/existent/catalog.yaml")
			So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
		})

		Convey("When reloading with an empty path", func() {
			_ = store.Replace(mustParse(minimalYAML))
			c, err := store.Reload(ctx, "")

			Convey("Then the embedded catalog is restored", func() {
				So(err, ShouldBeNil)
				So(c.Len(), ShouldEqual, 4)
			})
		})

		Convey("When replacing with nil", func() {
			So(errors.Is(store.Replace(nil), catalog.ErrInvalidCatalog), ShouldBeTrue)
			So(store.Current(), ShouldNotBeNil)
		})

		Convey("When readers race with replacements", func() {
			alt := mustParse(minimalYAML)
			def := catalog.MustDefault()
			var wg sync.WaitGroup
			torn := 0
			var mu sync.Mutex
			for i := 0; i < 8; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					for j := 0; j < 200; j++ {
						_ = store.Replace(alt)
						_ = store.Replace(def)
					}
				}()
				go func() {
					defer wg.Done()
					for j := 0; j < 200; j++ {
						c := store.Current()
						if c.Len() != len(c.Architectures()) {
							mu.Lock()
							torn++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then every reader sees a consistent snapshot", func() {
				So(torn, ShouldEqual, 0)
			})
		})
	})
}

func mustParse(s string) *catalog.Catalog {
	c, err := catalog.Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return c
}

func TestNewFromEntries(t *testing.T) {
	Convey("Given architecture and pattern entries built in code", t, func() {
		crit := model.CriteriaVector{
			UserTraffic: model.TrafficLow, Complexity: model.LevelLow, TeamSize: model.TeamSmall,
			Scalability: model.LevelLow, Budget: model.LevelLow,
		}
		archs := []model.ArchitectureProfile{{ID: "a", Criteria: crit}, {ID: "b", Criteria: crit}}
		pats := []model.DesignPattern{
			{ID: "p1", ApplicableArchitectures: []model.ArchitectureID{"a", "b"}},
			{ID: "p2", ApplicableArchitectures: []model.ArchitectureID{"b"}},
		}

		c, err := catalog.New(archs, pats)

		Convey("Then the pattern index groups patterns by architecture", func() {
			So(err, ShouldBeNil)
			So(c.PatternCount(), ShouldEqual, 2)
			So(len(c.PatternsFor("a")), ShouldEqual, 1)
			So(len(c.PatternsFor("b")), ShouldEqual, 2)
			So(c.PatternsFor("b")[1].ID, ShouldEqual, model.PatternID("p2"))
			So(c.PatternsFor("z"), ShouldBeEmpty)
		})

		Convey("Then later changes to the input slices are not visible", func() {
			pats[0].ApplicableArchitectures[0] = "b"
			So(c.PatternsFor("a")[0].ID, ShouldEqual, model.PatternID("p1"))
		})
	})
}
