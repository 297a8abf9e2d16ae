package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given a manager built with options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(registry),
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithMetricPrefix("x_"),
			WithHistogramBuckets([]float64{1, 5, 10}),
			WithRefreshInterval(5*time.Second),
			WithCustomLabels(map[string]string{"env": "test"}),
		)

		Convey("Then the options are applied", func() {
			So(m.namespace, ShouldEqual, "test")
			So(m.subsystem, ShouldEqual, "unit")
			So(m.metricPrefix, ShouldEqual, "x_")
			So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			So(m.refreshInterval, ShouldEqual, 5*time.Second)
			So(m.customLabels["env"], ShouldEqual, "test")
		})

		Convey("Then empty values keep the defaults", func() {
			d := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()),
				WithNamespace(""), WithHistogramBuckets(nil), WithRefreshInterval(0))
			So(d.namespace, ShouldEqual, "archrec")
			So(d.histogramBuckets, ShouldResemble, LatencyBuckets)
			So(d.refreshInterval, ShouldEqual, defaultRefreshInterval)
			So(d.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})

		Convey("Then metric names carry namespace, subsystem and prefix", func() {
			m.RecordRecommendation(StatusSuccess)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "test_unit_x_recommendations_total")
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given an isolated manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording recommendation outcomes", func() {
			m.RecordRecommendation(StatusSuccess)
			m.RecordRecommendation(StatusSuccess)
			m.RecordRecommendation(StatusFailure)

			Convey("Then counters are kept per status", func() {
				So(testutil.ToFloat64(m.recommendations.WithLabelValues(StatusSuccess)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.recommendations.WithLabelValues(StatusFailure)), ShouldEqual, 1)
			})
		})

		Convey("When recording selections", func() {
			m.RecordArchitectureSelected("monolithic", "1")
			m.RecordArchitectureScore("monolithic", 105)
			m.RecordGenerationLatency(0.3)

			Convey("Then the selection counter increments", func() {
				So(testutil.ToFloat64(m.architectureSelected.WithLabelValues("monolithic", "1")), ShouldEqual, 1)
			})
		})

		Convey("When the manager is disabled", func() {
			off := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
			off.RecordRecommendation(StatusSuccess)

			Convey("Then nothing is recorded", func() {
				So(testutil.ToFloat64(off.recommendations.WithLabelValues(StatusSuccess)), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then engine helpers do not panic", func() {
			So(func() {
				RecordRecommendation(StatusSuccess)
				RecordGenerationLatency(1.5)
				RecordArchitectureSelected("serverless", "2")
				RecordArchitectureScore("serverless", 20)
				UpdateCatalogSize(4, 6)
				RecordCatalogReload(StatusSuccess)
				RecordQuestionnaireSubmission(StatusInvalid)
				RecordBatch(3)
			}, ShouldNotPanic)
		})

		Convey("Then queue and worker helpers do not panic", func() {
			So(func() {
				UpdateQueueSize(10)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.1)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(4)
				RecordWorkerProcessed()
				RecordWorkerError()
				RecordWorkerProcessingLatency(2)
			}, ShouldNotPanic)
		})

		Convey("Then HTTP, error and system helpers do not panic", func() {
			So(func() {
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequestDuration("/healthz", "GET", "200", 1.2)
				RecordErrorByComponent("api", "validation")
				RecordErrorByType("validation", "low")
				RecordErrorByEndpoint("/api/recommendations/generate", "POST", "validation")
				RecordErrorLatency("api", "validation", 0.4)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})

		Convey("Then the catalog gauges reflect the last update", func() {
			UpdateCatalogSize(4, 6)
			So(testutil.ToFloat64(globalManager.catalogArchitectures), ShouldEqual, 4)
			So(testutil.ToFloat64(globalManager.catalogPatterns), ShouldEqual, 6)
		})

		Convey("Then the registry is shared", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}

func TestLatencyBuckets(t *testing.T) {
	Convey("Given a manager with the default latency buckets", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When sub-millisecond and multi-second latencies are recorded", func() {
			m.RecordGenerationLatency(0.3)
			m.RecordGenerationLatency(4000)

			Convey("Then they land in distinct millisecond buckets", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				cumulative := map[float64]uint64{}
				for _, f := range families {
					if f.GetName() != "archrec_engine_generation_latency_milliseconds" {
						continue
					}
					for _, b := range f.GetMetric()[0].GetHistogram().GetBucket() {
						cumulative[b.GetUpperBound()] = b.GetCumulativeCount()
					}
				}
				So(cumulative, ShouldHaveLength, len(LatencyBuckets))
				So(cumulative[0.25], ShouldEqual, 0)
				So(cumulative[0.5], ShouldEqual, 1)
				So(cumulative[2500], ShouldEqual, 1)
				So(cumulative[5000], ShouldEqual, 2)
			})
		})

		Convey("Then the buckets are ascending and start below one millisecond", func() {
			So(LatencyBuckets[0], ShouldBeLessThan, 1)
			for i := 1; i < len(LatencyBuckets); i++ {
				So(LatencyBuckets[i], ShouldBeGreaterThan, LatencyBuckets[i-1])
			}
		})
	})
}
