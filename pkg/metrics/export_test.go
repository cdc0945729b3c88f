package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

type failingGatherer struct{ err error }

func (f failingGatherer) Gather() ([]*dto.MetricFamily, error) { return nil, f.err }

func TestWriteText(t *testing.T) {
	Convey("Given a registry with pipeline metrics", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithNamespace("export"), WithPrometheusRegistry(registry))
		manager.opportunitiesFound.Add(2)

		Convey("When writing it as text", func() {
			var buf bytes.Buffer
			err := WriteText(&buf, registry)

			Convey("Then the counter appears with its value", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "# TYPE export_pipeline_opportunities_identified_total counter")
				So(buf.String(), ShouldContainSubstring, "export_pipeline_opportunities_identified_total 2")
			})
		})

		Convey("When the gatherer fails", func() {
			boom := errors.New("boom")
			err := WriteText(&bytes.Buffer{}, failingGatherer{err: boom})

			Convey("Then both the sentinel and the cause are reported", func() {
				So(errors.Is(err, ErrGatherFailed), ShouldBeTrue)
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})
	})

	Convey("Given the global registry", t, func() {
		RecordPipelineRun("success", 1, 0.01)
		var buf bytes.Buffer

		So(Dump(&buf), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "monetizer_pipeline_runs_total")
	})
}
