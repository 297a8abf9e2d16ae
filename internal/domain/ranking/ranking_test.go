package ranking_test

import (
	"testing"

	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

var catalogOrder = []model.ArchitectureID{model.Monolithic, model.Microservices, model.Serverless, model.SOA}

func TestTopK(t *testing.T) {
	Convey("Given scores for the whole catalog", t, func() {
		scores := map[model.ArchitectureID]int{
			model.Monolithic:    105,
			model.Microservices: 0,
			model.Serverless:    20,
			model.SOA:           0,
		}

		Convey("When selecting the top three", func() {
			top := ranking.TopK(catalogOrder, scores, ranking.DefaultK)

			Convey("Then entries are ordered by score with catalog order breaking ties", func() {
				So(top, ShouldResemble, []ranking.Entry{
					{Rank: 1, ID: model.Monolithic, Score: 105},
					{Rank: 2, ID: model.Serverless, Score: 20},
					{Rank: 3, ID: model.Microservices, Score: 0},
				})
			})
		})

		Convey("When k exceeds the catalog size", func() {
			top := ranking.TopK(catalogOrder, scores, 10)

			Convey("Then every architecture is returned and tied entries share a rank", func() {
				So(len(top), ShouldEqual, 4)
				So(top[2].ID, ShouldEqual, model.Microservices)
				So(top[3].ID, ShouldEqual, model.SOA)
				So(top[2].Rank, ShouldEqual, 3)
				So(top[3].Rank, ShouldEqual, 3)
			})
		})

		Convey("When k is not positive", func() {
			Convey("Then nothing is returned", func() {
				So(ranking.TopK(catalogOrder, scores, 0), ShouldBeEmpty)
				So(ranking.TopK(catalogOrder, scores, -1), ShouldBeEmpty)
			})
		})
	})

	Convey("Given all scores equal", t, func() {
		scores := map[model.ArchitectureID]int{}

		Convey("When the input order is reversed", func() {
			reversed := []model.ArchitectureID{model.SOA, model.Serverless, model.Microservices, model.Monolithic}
			top := ranking.TopK(reversed, scores, 4)

			Convey("Then the given order is kept and every entry ranks first", func() {
				So(top[0].ID, ShouldEqual, model.SOA)
				So(top[3].ID, ShouldEqual, model.Monolithic)
				for _, e := range top {
					So(e.Rank, ShouldEqual, 1)
				}
			})
		})
	})

	Convey("Given an empty catalog", t, func() {
		Convey("Then the ranker returns nothing", func() {
			So(ranking.TopK(nil, nil, 3), ShouldBeEmpty)
		})
	})
}
