package clist_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tabriszx/algoassist/internal/adapters/clist"
)

func TestContestParams(t *testing.T) {
	convey.Convey("Given a client with full account defaults", t, func() {
		c := clist.New(
			clist.WithCredentials("someone", "key123"),
			clist.WithOrderBy("start"),
			clist.WithLimit(20),
		)
		now := time.Date(2025, 7, 16, 10, 30, 45, 123456789, time.UTC)

		convey.Convey("When building contest params for a 7-day window", func() {
			params := c.ContestParams(now, 7, nil)

			convey.Convey("Then the lower bound is now at second precision", func() {
				convey.So(params.Get("start__gte"), convey.ShouldEqual, "2025-07-16T10:30:45")
			})

			convey.Convey("Then the upper bound is now+7d truncated to midnight", func() {
				convey.So(params.Get("start__lte"), convey.ShouldEqual, "2025-07-23T00:00:00")
			})

			convey.Convey("Then account defaults are merged in", func() {
				convey.So(params.Get("username"), convey.ShouldEqual, "someone")
				convey.So(params.Get("api_key"), convey.ShouldEqual, "key123")
				convey.So(params.Get("order_by"), convey.ShouldEqual, "start")
				convey.So(params.Get("limit"), convey.ShouldEqual, "20")
			})

			convey.Convey("Then the absent platform filter is omitted entirely", func() {
				convey.So(params.Has("resource_id"), convey.ShouldBeFalse)
			})

			convey.Convey("Then no parameter carries an empty value", func() {
				for key, vals := range params {
					for _, v := range vals {
						convey.So(v, convey.ShouldNotBeEmpty)
						convey.So(key, convey.ShouldNotBeEmpty)
					}
				}
			})
		})

		convey.Convey("When building contest params with a platform filter", func() {
			rid := 163
			params := c.ContestParams(now, 3, &rid)

			convey.Convey("Then the filter is serialized", func() {
				convey.So(params.Get("resource_id"), convey.ShouldEqual, "163")
			})
		})

		convey.Convey("When the window is zero days", func() {
			params := c.ContestParams(now, 0, nil)

			convey.Convey("Then the upper bound is the same day's midnight", func() {
				convey.So(params.Get("start__lte"), convey.ShouldEqual, "2025-07-16T00:00:00")
			})
		})
	})

	convey.Convey("Given a client without credentials", t, func() {
		c := clist.New()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		convey.Convey("When building contest params", func() {
			params := c.ContestParams(now, 7, nil)

			convey.Convey("Then credentials are omitted, never sent empty", func() {
				convey.So(params.Has("username"), convey.ShouldBeFalse)
				convey.So(params.Has("api_key"), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given a non-UTC now", t, func() {
		c := clist.New()
		loc := time.FixedZone("UTC+8", 8*3600)
		now := time.Date(2025, 7, 16, 23, 30, 0, 0, loc)

		convey.Convey("When building contest params", func() {
			params := c.ContestParams(now, 1, nil)

			convey.Convey("Then bounds are computed in UTC", func() {
				convey.So(params.Get("start__gte"), convey.ShouldEqual, "2025-07-16T15:30:00")
				convey.So(params.Get("start__lte"), convey.ShouldEqual, "2025-07-17T00:00:00")
			})
		})
	})
}

func TestProblemParams(t *testing.T) {
	convey.Convey("Given a client with account defaults", t, func() {
		c := clist.New(
			clist.WithCredentials("someone", "key123"),
			clist.WithOrderBy("start"),
			clist.WithLimit(20),
		)

		convey.Convey("When building problem params for one contest", func() {
			params := c.ProblemParams(58371)

			convey.Convey("Then the contest id is serialized as a string", func() {
				convey.So(params.Get("contest_ids"), convey.ShouldEqual, "58371")
			})

			convey.Convey("Then the sort order is fixed to rating", func() {
				convey.So(params.Get("order_by"), convey.ShouldEqual, "rating")
			})

			convey.Convey("Then the configured limit is carried", func() {
				convey.So(params.Get("limit"), convey.ShouldEqual, "20")
			})
		})
	})
}
