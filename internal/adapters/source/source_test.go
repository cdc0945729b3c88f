package source_test

import (
	"context"
	"testing"

	"github.com/okian/monetizer/internal/adapters/source"
	"github.com/okian/monetizer/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStaticCollector(t *testing.T) {
	Convey("Given a static collector", t, func() {
		obs := []model.Observation{{Segment: "techfinance", Score: 0.9}}
		collector := source.NewStaticCollector(obs)

		Convey("When the input slice is changed after construction", func() {
			obs[0].Score = 0.1
			data, err := collector.CollectData(context.Background())

			Convey("Then the collector still returns its own copy", func() {
				So(err, ShouldBeNil)
				So(data, ShouldResemble, model.RawData{{Segment: "techfinance", Score: 0.9}})
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := collector.CollectData(ctx)

			Convey("Then the context error is returned", func() {
				So(err, ShouldEqual, context.Canceled)
			})
		})
	})
}

func TestMeanTrendAnalyzer(t *testing.T) {
	Convey("Given repeated observations", t, func() {
		data := model.RawData{
			{Segment: "techfinance", Score: 0.8},
			{Segment: "retail", Score: 0.6},
			{Segment: "techfinance", Score: 1.0},
		}

		Convey("When analyzing", func() {
			trends, err := source.NewMeanTrendAnalyzer().Analyze(context.Background(), data)

			Convey("Then segments are averaged in first-seen order", func() {
				So(err, ShouldBeNil)
				So(trends.Keys(), ShouldResemble, []string{"techfinance", "retail"})
				v, _ := trends.Get("techfinance")
				So(v, ShouldAlmostEqual, 0.9)
				v, _ = trends.Get("retail")
				So(v, ShouldAlmostEqual, 0.6)
			})
		})

		Convey("When there is no data", func() {
			trends, err := source.NewMeanTrendAnalyzer().Analyze(context.Background(), nil)

			Convey("Then the trend map is empty", func() {
				So(err, ShouldBeNil)
				So(trends.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestCatalogStrategyGenerator(t *testing.T) {
	Convey("Given a catalog with defaults", t, func() {
		gen := source.NewCatalogStrategyGenerator(
			map[string][]string{"TechFinance": {"subscription plan", "transaction fees"}},
			[]string{"advertising"},
		)

		Convey("When generating for known and unknown segments", func() {
			got, err := gen.GenerateStrategies(context.Background(), model.OpportunityList{"edtech", "techfinance"})

			Convey("Then every segment is covered in request order", func() {
				So(err, ShouldBeNil)
				So(got.Keys(), ShouldResemble, []string{"edtech", "techfinance"})
				v, _ := got.Get("techfinance")
				So(v, ShouldResemble, []string{"subscription plan", "transaction fees"})
				v, _ = got.Get("edtech")
				So(v, ShouldResemble, []string{"advertising"})
			})

			Convey("And callers cannot mutate the catalog", func() {
				v, _ := got.Get("techfinance")
				v[0] = "changed"
				again, _ := gen.GenerateStrategies(context.Background(), model.OpportunityList{"techfinance"})
				first, _ := again.Get("techfinance")
				So(first[0], ShouldEqual, "subscription plan")
			})
		})
	})
}
