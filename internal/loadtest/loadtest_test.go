package loadtest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/archrec/internal/adapters/http/api"
	service "github.com/okian/archrec/internal/app"
	"github.com/okian/archrec/internal/domain/engine"
	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/loadtest"
	"github.com/okian/archrec/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given the vector generator", t, func() {
		a := loadtest.Generate(42, 200)
		b := loadtest.Generate(42, 200)
		c := loadtest.Generate(43, 200)

		Convey("Then the same seed yields the same vectors", func() {
			So(a, ShouldResemble, b)
			So(a, ShouldNotResemble, c)
		})

		Convey("Then every vector is in domain", func() {
			optional := 0
			for _, v := range a {
				So(v.UserTraffic.Valid(), ShouldBeTrue)
				So(v.Complexity.Valid(), ShouldBeTrue)
				So(v.TeamSize.Valid(), ShouldBeTrue)
				So(v.Scalability.Valid(), ShouldBeTrue)
				So(v.Budget.Valid(), ShouldBeTrue)
				if v.Deployment != nil {
					So(v.Deployment.Valid(), ShouldBeTrue)
					optional++
				}
			}
			So(optional, ShouldBeGreaterThan, 0)
			So(optional, ShouldBeLessThan, len(a))
		})
	})
}

// smallProject scores monolithic 105, serverless 20 and the rest 0.
func smallProject() *model.RequirementVector {
	return &model.RequirementVector{
		UserTraffic: model.TrafficLow,
		Complexity:  model.LevelLow,
		TeamSize:    model.TeamSmall,
		Scalability: model.LevelLow,
		Budget:      model.LevelLow,
		Maintenance: model.Ptr(model.LevelLow),
	}
}

func TestVerify(t *testing.T) {
	eng := engine.New(engine.WithLogger(logger.Nop()))
	ctx := context.Background()

	Convey("Given engine results for generated vectors", t, func() {
		Convey("Then none of them violates an invariant", func() {
			for _, v := range loadtest.Generate(7, 300) {
				So(loadtest.Verify(eng.GenerateRecommendation(ctx, v), 3), ShouldBeEmpty)
			}
		})
	})

	Convey("Given tampered results", t, func() {
		v := smallProject()

		Convey("Then a failure result is reported", func() {
			res := engine.Failure(engine.ErrInternal)
			So(loadtest.Verify(res, 3), ShouldNotBeEmpty)
		})

		Convey("Then an out-of-order list is reported", func() {
			res := eng.GenerateRecommendation(ctx, v)
			recs := res.Recommendations
			recs[0], recs[2] = recs[2], recs[0]
			So(loadtest.Verify(res, 3), ShouldNotBeEmpty)
		})

		Convey("Then a wrong confidence is reported", func() {
			res := eng.GenerateRecommendation(ctx, v)
			res.Recommendations[1].Architecture.Confidence = 101
			So(loadtest.Verify(res, 3), ShouldNotBeEmpty)
		})

		Convey("Then an inapplicable pattern is reported", func() {
			res := eng.GenerateRecommendation(ctx, v)
			res.Recommendations[0].DesignPatterns = append(res.Recommendations[0].DesignPatterns,
				model.DesignPattern{ID: "ghost", ApplicableArchitectures: []model.ArchitectureID{"mainframe"}})
			So(loadtest.Verify(res, 3), ShouldNotBeEmpty)
		})

		Convey("Then a short list is reported", func() {
			So(loadtest.Verify(eng.GenerateRecommendation(ctx, v), 2), ShouldNotBeEmpty)
		})
	})

	Convey("Given two results", t, func() {
		v := smallProject()
		a := eng.GenerateRecommendation(ctx, v)
		b := eng.GenerateRecommendation(ctx, v)

		Convey("Then identical runs are the same", func() {
			So(loadtest.Same(a, b), ShouldBeTrue)
			b.Recommendations[0].Reasoning = nil
			So(loadtest.Same(a, b), ShouldBeFalse)
		})
	})
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(256), service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	apiServer := api.NewServer(svc, api.WithLogger(logger.Nop()))
	mux := http.NewServeMux()
	apiServer.Register(context.Background(), mux)
	srv := httptest.NewServer(apiServer.Handler(mux))
	t.Cleanup(func() {
		srv.Close()
		apiServer.Close()
		svc.Stop()
	})
	return srv
}

func TestRun(t *testing.T) {
	_ = logger.SetLevelString("error")
	srv := newServer(t)

	Convey("Given a running service", t, func() {
		out := filepath.Join(t.TempDir(), "vectors", "out.json")
		cfg := &loadtest.Config{
			BaseURL:     srv.URL,
			Requests:    120,
			Workers:     8,
			Timeout:     5 * time.Second,
			Seed:        9,
			TopK:        3,
			BatchSize:   20,
			Idempotence: 10,
			Compare:     true,
			OutputFile:  out,
		}

		Convey("When the load test runs", func() {
			stats, err := loadtest.Run(context.Background(), cfg)

			Convey("Then every response satisfies the invariants", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 120)
				So(stats.Submitted, ShouldEqual, 120)
				So(stats.Successful, ShouldEqual, 120)
				So(stats.Violations, ShouldBeEmpty)
			})

			Convey("Then the vectors are written to the output file", func() {
				_, statErr := os.Stat(out)
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When the expected list size is wrong", func() {
			cfg.TopK = 2
			cfg.Compare = false
			cfg.OutputFile = ""
			stats, err := loadtest.Run(context.Background(), cfg)

			Convey("Then the run reports violations", func() {
				So(errors.Is(err, loadtest.ErrViolations), ShouldBeTrue)
				So(stats.Violations, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given an unreachable service", t, func() {
		cfg := &loadtest.Config{BaseURL: "http://127.0.0.1:1", Requests: 1, Workers: 1, Timeout: time.Second}
		_, err := loadtest.Run(context.Background(), cfg)

		Convey("Then the health check fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}
