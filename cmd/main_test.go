package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/archrec/internal/config"
	"github.com/okian/archrec/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestWiring(t *testing.T) {
	t.Setenv("ARCHREC_ADDR", ":8080")
	t.Setenv("ARCHREC_BATCH_QUEUE_SIZE", "32")
	t.Setenv("ARCHREC_BATCH_WORKER_COUNT", "2")
	t.Setenv("ARCHREC_MAX_BATCH_SIZE", "16")
	t.Setenv("ARCHREC_MAX_RECOMMENDATIONS", "2")
	t.Setenv("ARCHREC_ENGINE_VERSION", "9.9.9")

	convey.Convey("Given configuration from the environment", t, func() {
		ctx := context.Background()
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":8080")

		convey.Convey("When the service and handler are built", func() {
			svc := newService(cfg, logger.Nop())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			handler, closeHandler := newHandler(ctx, cfg, svc, logger.Nop())
			defer closeHandler()

			convey.Convey("Then the configuration reaches the service", func() {
				stats := svc.GetStats()
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
				convey.So(stats["queueSize"], convey.ShouldEqual, 32)
				convey.So(stats["maxRecommendations"], convey.ShouldEqual, 2)
				convey.So(svc.EngineVersion(), convey.ShouldEqual, "9.9.9")
			})

			convey.Convey("Then API and docs routes are served", func() {
				for _, path := range []string{"/", "/api-docs", "/openapi.yaml", "/healthz", "/api/recommendations/architectures", "/api/learning/comparison"} {
					w := httptest.NewRecorder()
					handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("Then recommendations honour max_recommendations", func() {
				body := `{"requirements":{"userTraffic":"low","complexity":"low","teamSize":"small","scalability":"low","budget":"low"}}`
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recommendations/generate", strings.NewReader(body)))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(strings.Count(w.Body.String(), `"rank":`), convey.ShouldEqual, 2)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"engineVersion":"9.9.9"`)
			})
		})
	})
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("ARCHREC_ADDR", "")

	convey.Convey("Given an empty listen address", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then configuration loading fails", func() {
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestBackgroundLoops(t *testing.T) {
	convey.Convey("Given the background loops", t, func() {
		convey.Convey("Then the system metrics updater returns when ctx is done", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the reload watcher returns when ctx is done", func() {
			svc := newService(config.New(), logger.Nop())
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { watchReload(ctx, svc, logger.Nop()) }, convey.ShouldNotPanic)
		})
	})
}
