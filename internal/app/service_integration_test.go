package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/okian/monetizer/internal/adapters/source"
	service "github.com/okian/monetizer/internal/app"
	"github.com/okian/monetizer/internal/domain/market"
	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/internal/domain/risk"
	"github.com/okian/monetizer/internal/domain/tactics"
	"github.com/okian/monetizer/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// partialGenerator covers only the first opportunity.
type partialGenerator struct{}

func (partialGenerator) GenerateStrategies(_ context.Context, opps model.OpportunityList) (*model.TacticMap, error) {
	out := model.NewTacticMap()
	if len(opps) > 0 {
		out.Set(opps[0], []string{"ads"})
	}
	return out, nil
}

func newPipeline(obs []model.Observation, gen tactics.StrategyGenerator, log logger.Logger) *service.Service {
	analyzer := market.NewAnalyzer(
		source.NewStaticCollector(obs),
		source.NewMeanTrendAnalyzer(),
		market.WithLogger(log),
	)
	suggestor := tactics.NewSuggestor(gen, tactics.WithLogger(log))
	manager := risk.NewManager(risk.WithLogger(log))
	return service.New(analyzer, suggestor, manager, service.WithLogger(log))
}

func TestService_Integration(t *testing.T) {
	Convey("Given the real stages over static market data", t, func() {
		var buf bytes.Buffer
		log := logger.New(&buf, slog.LevelInfo)
		obs := []model.Observation{
			{Segment: "techfinance", Score: 0.9},
			{Segment: "ab", Score: 0.9},
			{Segment: "retail", Score: 0.6},
			{Segment: "healthtech", Score: 0.7},
			{Segment: "healthtech", Score: 0.9},
		}
		gen := source.NewCatalogStrategyGenerator(
			map[string][]string{"techfinance": {"subscription plan", "transaction fees"}},
			[]string{"advertising"},
		)
		svc := newPipeline(obs, gen, log)

		Convey("When the pipeline runs", func() {
			report, err := svc.Run(context.Background())

			Convey("Then ripe segments flow through to risk profiles", func() {
				So(err, ShouldBeNil)
				So(report.Trends.Keys(), ShouldResemble, []string{"techfinance", "ab", "retail", "healthtech"})
				So(report.Opportunities, ShouldResemble, model.OpportunityList{"techfinance", "healthtech"})
				So(len(report.Assessments), ShouldEqual, 3)

				first := report.Assessments[0]
				So(first.Segment, ShouldEqual, "techfinance")
				So(first.Tactic, ShouldEqual, "subscription plan")
				So(first.EvaluationScore, ShouldEqual, 0.8)
				So(first.Risk, ShouldResemble, model.RiskProfile{
					RiskScore: 0.6,
					Category:  model.RiskMedium,
					MitigationStrategies: []string{
						"Develop contingency plans.",
						"Monitor market trends closely.",
					},
				})

				last := report.Assessments[2]
				So(last.Segment, ShouldEqual, "healthtech")
				So(last.Tactic, ShouldEqual, "advertising")
				So(last.EvaluationScore, ShouldEqual, 0.5)
			})

			Convey("And the report renders as ordered JSON", func() {
				data, err := json.Marshal(report)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"tactics":{"techfinance":["subscription plan","transaction fees"],"healthtech":["advertising"]}`)
			})
		})

		Convey("When no segment is ripe", func() {
			svc := newPipeline([]model.Observation{{Segment: "retail", Score: 0.95}}, gen, log)
			report, err := svc.Run(context.Background())

			Convey("Then the run succeeds empty and the suggestor warns", func() {
				So(err, ShouldBeNil)
				So(report.Opportunities, ShouldBeEmpty)
				So(report.Assessments, ShouldBeEmpty)
				So(buf.String(), ShouldContainSubstring, "no opportunities provided")
			})
		})

		Convey("When the generator misses a segment", func() {
			svc := newPipeline(obs, partialGenerator{}, log)
			_, err := svc.Run(context.Background())

			Convey("Then the lookup error surfaces", func() {
				So(errors.Is(err, tactics.ErrStrategyNotFound), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "healthtech")
			})
		})
	})
}
