package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given manager options", t, func() {
		Convey("When creating a manager with defaults", func() {
			m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should carry the default identity", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "evalboard")
				So(m.subsystem, ShouldEqual, "api")
				So(m.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithPrometheusRegistry(prometheus.NewRegistry()),
				WithNamespace("custom"),
				WithSubsystem("svc"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithMetricsEnabled(false),
			)

			Convey("Then the options should be applied", func() {
				So(m.namespace, ShouldEqual, "custom")
				So(m.subsystem, ShouldEqual, "svc")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
				So(m.enabled, ShouldBeFalse)
			})
		})

		Convey("When option values are empty", func() {
			m := NewManager(
				WithPrometheusRegistry(prometheus.NewRegistry()),
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
			)

			Convey("Then defaults should be preserved", func() {
				So(m.namespace, ShouldEqual, "evalboard")
				So(m.subsystem, ShouldEqual, "api")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording domain events", func() {
			// These must not panic and must register on the custom registry.
			RecordSessionStarted()
			RecordSubmissionGraded(3)
			RecordCandidateCreated()
			RecordEvaluationCreated()
			RecordEvaluationUpdated()
			RecordEvaluationDeleted()
			UpdateTotalCandidates(7)
			UpdateTotalAttempts(12)
			RecordHTTPRequest("dashboard", "GET", "200")
			RecordHTTPRequestDuration("dashboard", "GET", "200", 12.5)
			RecordStoreQueryLatency("recent_attempts", 3.2)
			RecordErrorByEndpoint("evaluations", "POST", "client_error")
			RecordErrorByType("client_error", "medium")

			Convey("Then the registry should gather families", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
