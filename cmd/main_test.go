package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/tabriszx/algoassist/internal/adapters/clist"
	"github.com/tabriszx/algoassist/internal/app"
)

func TestContestsTableWindow(t *testing.T) {
	convey.Convey("Given a contest API capturing the query window", t, func() {
		var gotGTE, gotLTE string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotGTE = r.URL.Query().Get("start__gte")
			gotLTE = r.URL.Query().Get("start__lte")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"objects": [{"id": 1, "event": "Weekly Round", "start": "2026-08-30T12:00:00", "href": "https://example.com/1", "resource_id": 1}]}`))
		}))
		defer srv.Close()

		client := clist.New(clist.WithBaseURL(srv.URL))
		svc := app.New(app.WithContestSource(client))

		convey.Convey("When listing as a table without a days argument", func() {
			code := contestsCmd(context.Background(), svc, client, 7, []string{"--table"})
			convey.So(code, convey.ShouldEqual, 0)

			convey.Convey("Then the window spans the default days forward", func() {
				gte, err := time.Parse("2006-01-02T15:04:05", gotGTE)
				convey.So(err, convey.ShouldBeNil)
				lte, err := time.Parse("2006-01-02T15:04:05", gotLTE)
				convey.So(err, convey.ShouldBeNil)
				convey.So(lte.After(gte), convey.ShouldBeTrue)
				convey.So(lte.Sub(gte), convey.ShouldBeGreaterThan, 6*24*time.Hour)
			})
		})
	})
}
