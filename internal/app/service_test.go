package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/archrec/internal/app"
	"github.com/okian/archrec/internal/domain/engine"
	"github.com/okian/archrec/internal/domain/learning"
	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/questionnaire"
	"github.com/okian/archrec/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

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

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then the catalog is usable before Start", func() {
			So(svc.Architectures(), ShouldHaveLength, 4)
			So(svc.Patterns(), ShouldHaveLength, 6)
			So(svc.EngineVersion(), ShouldEqual, "1.0.0")
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(16),
			service.WithMaxRecommendations(1),
			service.WithEngineVersion("2.0.0"),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["queueSize"], ShouldEqual, 16)
			So(stats["maxRecommendations"], ShouldEqual, 1)
			So(svc.EngineVersion(), ShouldEqual, "2.0.0")
		})

		Convey("Then results carry a single recommendation", func() {
			res, err := svc.GenerateRecommendation(context.Background(), smallProject())
			So(err, ShouldBeNil)
			So(res.Recommendations, ShouldHaveLength, 1)
		})
	})
}

func TestService_GenerateRecommendation(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("When a valid vector is evaluated", func() {
			res, err := svc.GenerateRecommendation(ctx, smallProject())

			Convey("Then the monolith is recommended first", func() {
				So(err, ShouldBeNil)
				So(res.Success, ShouldBeTrue)
				So(res.Recommendations[0].Architecture.Type, ShouldEqual, model.Monolithic)
				So(svc.GetStats()["generated"], ShouldEqual, int64(1))
			})
		})

		Convey("When the vector is missing", func() {
			res, err := svc.GenerateRecommendation(ctx, nil)

			Convey("Then an input error and a failure result are returned", func() {
				So(errors.Is(err, engine.ErrInvalidRequirements), ShouldBeTrue)
				So(res.Success, ShouldBeFalse)
				So(res.Error, ShouldEqual, engine.FailureMessage)
				So(svc.GetStats()["failed"], ShouldEqual, int64(1))
			})
		})
	})
}

func TestService_Lookups(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("Then an architecture comes with its related patterns", func() {
			a, related, err := svc.Architecture(model.Serverless)
			So(err, ShouldBeNil)
			So(a.ID, ShouldEqual, model.Serverless)
			So(related, ShouldHaveLength, 1)
			So(related[0].ID, ShouldEqual, model.PatternID("observer"))
		})

		Convey("Then unknown ids are not found", func() {
			_, _, err := svc.Architecture("mainframe")
			So(errors.Is(err, engine.ErrNotFound), ShouldBeTrue)
			_, err = svc.Pattern("visitor")
			So(errors.Is(err, engine.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then a pattern can be fetched by id", func() {
			p, err := svc.Pattern("circuitBreaker")
			So(err, ShouldBeNil)
			So(p.ApplicableArchitectures, ShouldResemble, []model.ArchitectureID{model.Microservices, model.SOA})
		})
	})
}

func TestService_Learning(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("Then the hub content is served", func() {
			So(svc.LearningHub().QuickStart.Title, ShouldEqual, "Getting Started with Architecture")
		})

		Convey("Then case studies come with every category", func() {
			studies, categories := svc.CaseStudies(learning.CaseStudyFilter{Category: "real-time"})
			So(studies, ShouldHaveLength, 1)
			So(studies[0].ID, ShouldEqual, "uber")
			So(categories, ShouldHaveLength, 4)

			_, err := svc.CaseStudy("myspace")
			So(errors.Is(err, learning.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then best practices come with every category", func() {
			practices, categories := svc.BestPractices("Performance")
			So(practices, ShouldHaveLength, 1)
			So(categories, ShouldHaveLength, 4)
		})

		Convey("Then the comparison covers the catalog architectures", func() {
			rows := svc.Comparison().Rows
			So(rows, ShouldNotBeEmpty)
			for _, a := range svc.Architectures() {
				So(rows[0].Ratings, ShouldContainKey, a.ID)
			}
		})
	})
}

func TestService_Questionnaire(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("Then the question set is exposed", func() {
			So(svc.Questions(), ShouldHaveLength, 8)
			So(svc.Categories(), ShouldHaveLength, 8)
		})

		Convey("When the required questions are answered", func() {
			req, err := svc.SubmitQuestionnaire(ctx, []questionnaire.Response{
				{QuestionID: 1, Answer: "low"},
				{QuestionID: 2, Answer: "low"},
				{QuestionID: 3, Answer: "small"},
				{QuestionID: 4, Answer: "low"},
				{QuestionID: 5, Answer: "low"},
				{QuestionID: 7, Answer: "low"},
			})

			Convey("Then the vector feeds the engine", func() {
				So(err, ShouldBeNil)
				res, err := svc.GenerateRecommendation(ctx, req)
				So(err, ShouldBeNil)
				So(res.Recommendations[0].Architecture.Score, ShouldEqual, 105)
			})
		})

		Convey("When a required question is missing", func() {
			_, err := svc.SubmitQuestionnaire(ctx, []questionnaire.Response{{QuestionID: 1, Answer: "low"}})

			Convey("Then the error lists the missing questions", func() {
				So(errors.Is(err, questionnaire.ErrMissingQuestions), ShouldBeTrue)
			})
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithLogger(logger.Nop()))
		defer svc.Stop()

		Convey("When starting the service with a short-lived context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			err := svc.Start(ctx)
			cancel()

			Convey("Then it starts and the workers outlive the context", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
				res, err := svc.GenerateBatch(context.Background(), []*model.RequirementVector{smallProject()})
				So(err, ShouldBeNil)
				So(res, ShouldHaveLength, 1)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When the service was never started", func() {
			_, err := svc.GenerateBatch(context.Background(), []*model.RequirementVector{smallProject()})

			Convey("Then batches are refused", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}
