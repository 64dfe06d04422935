package dashboard_test

import (
	"testing"
	"time"

	"github.com/hireloop/evalboard/internal/domain/dashboard"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStartOfWeek(t *testing.T) {
	Convey("Given the week starts on Monday", t, func() {
		Convey("When the date is itself a Monday", func() {
			monday := time.Date(2024, 3, 11, 15, 30, 0, 0, time.UTC)

			Convey("Then it maps to that same date at midnight", func() {
				So(dashboard.StartOfWeek(monday), ShouldEqual, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When the date is mid-week", func() {
			thursday := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

			Convey("Then it maps to the most recent prior Monday", func() {
				So(dashboard.StartOfWeek(thursday), ShouldEqual, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When the date is a Sunday", func() {
			sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)

			Convey("Then it still maps to the Monday before it", func() {
				So(dashboard.StartOfWeek(sunday), ShouldEqual, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When checking a whole week of dates", func() {
			monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

			Convey("Then every day maps into the same week bucket", func() {
				for d := 0; d < 7; d++ {
					So(dashboard.StartOfWeek(monday.AddDate(0, 0, d)), ShouldEqual, monday)
				}
			})
		})
	})
}

func TestRoundAverage(t *testing.T) {
	Convey("Given average score rounding", t, func() {
		Convey("When averaging the completed scores 6 and 8", func() {
			So(dashboard.RoundAverage(7.0), ShouldEqual, 7.00)
		})

		Convey("When the average has a long fraction", func() {
			So(dashboard.RoundAverage(7.005), ShouldEqual, 7.01)
			So(dashboard.RoundAverage(6.994), ShouldEqual, 6.99)
		})

		Convey("When there are no completed attempts", func() {
			So(dashboard.RoundAverage(0), ShouldEqual, 0)
		})
	})
}

func TestMergeActivities(t *testing.T) {
	base := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	Convey("Given completed-evaluation and interview-scheduled streams", t, func() {
		completed := []dashboard.Activity{
			{Type: dashboard.ActivityEvaluation, ActionBy: "Jane Doe", TargetName: "Math Basics", Date: at(1)},
			{Type: dashboard.ActivityEvaluation, ActionBy: "John Roe", TargetName: "Logic", Date: at(4)},
			{Type: dashboard.ActivityEvaluation, ActionBy: "Ann Poe", TargetName: "Go", Date: at(2)},
		}
		scheduled := []dashboard.Activity{
			{Type: dashboard.ActivityInterview, ActionBy: dashboard.HRTeamActor, TargetName: "Jane Doe", Date: at(5)},
			{Type: dashboard.ActivityInterview, ActionBy: dashboard.HRTeamActor, TargetName: "Ann Poe", Date: at(3)},
		}

		Convey("When merging with the feed limit", func() {
			feed := dashboard.MergeActivities(completed, scheduled, dashboard.ActivityFeedLimit)

			Convey("Then the feed is bounded and sorted by date non-increasing", func() {
				So(len(feed), ShouldBeLessThanOrEqualTo, dashboard.ActivityFeedLimit)
				for i := 1; i < len(feed); i++ {
					So(feed[i].Date.After(feed[i-1].Date), ShouldBeFalse)
				}
				So(feed[0].Type, ShouldEqual, dashboard.ActivityInterview)
				So(feed[0].TargetName, ShouldEqual, "Jane Doe")
			})
		})

		Convey("When more items exist than the limit", func() {
			extra := append([]dashboard.Activity{}, completed...)
			for h := 6; h < 14; h++ {
				extra = append(extra, dashboard.Activity{Type: dashboard.ActivityEvaluation, Date: at(h)})
			}
			feed := dashboard.MergeActivities(extra, scheduled, dashboard.ActivityFeedLimit)

			Convey("Then the feed is truncated to the limit", func() {
				So(len(feed), ShouldEqual, dashboard.ActivityFeedLimit)
			})
		})

		Convey("When both streams are empty", func() {
			feed := dashboard.MergeActivities(nil, nil, dashboard.ActivityFeedLimit)

			Convey("Then the feed is empty", func() {
				So(feed, ShouldBeEmpty)
			})
		})
	})
}

func TestDisplayName(t *testing.T) {
	Convey("Given display-name resolution", t, func() {
		Convey("When a candidate full name exists", func() {
			So(dashboard.DisplayName("Jane Doe", "jdoe"), ShouldEqual, "Jane Doe")
		})

		Convey("When only the identity username exists", func() {
			So(dashboard.DisplayName("", "jdoe"), ShouldEqual, "jdoe")
		})

		Convey("When neither exists", func() {
			So(dashboard.DisplayName("", ""), ShouldEqual, dashboard.FallbackDisplayName)
		})
	})
}
