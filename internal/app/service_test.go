package app_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tabriszx/algoassist/internal/adapters/bindings"
	"github.com/tabriszx/algoassist/internal/adapters/clist"
	"github.com/tabriszx/algoassist/internal/adapters/luogu"
	"github.com/tabriszx/algoassist/internal/adapters/render"
	"github.com/tabriszx/algoassist/internal/app"
	"github.com/tabriszx/algoassist/internal/domain/format"
	"github.com/tabriszx/algoassist/internal/domain/model"
)

type fakeContests struct {
	contests []model.Contest
	problems []model.Problem
	err      error

	gotDays     int
	gotResource *int
}

func (f *fakeContests) Contests(_ context.Context, days int, resourceID *int) ([]model.Contest, error) {
	f.gotDays = days
	f.gotResource = resourceID
	return f.contests, f.err
}

func (f *fakeContests) Problems(_ context.Context, _ int64) ([]model.Problem, error) {
	return f.problems, f.err
}

type fakeJudge struct {
	uid        int64
	resolveErr error
	profile    *model.Profile
	profileErr error
}

func (f *fakeJudge) ResolveUser(_ context.Context, _ string) (int64, error) {
	return f.uid, f.resolveErr
}

func (f *fakeJudge) Profile(_ context.Context, _ int64) (*model.Profile, error) {
	return f.profile, f.profileErr
}

func sampleProfile(name string) *model.Profile {
	return &model.Profile{
		Data: model.ProfileData{
			User: model.User{
				UID: 1, Name: name, Color: "Blue",
				PassedProblemCount: 2,
			},
			DailyCounts: map[string][]int{"2025-07-16": {2, 4}},
			Passed:      []model.PassedProblem{{Difficulty: 1}, {Difficulty: 2}},
		},
	}
}

func TestContestOperations(t *testing.T) {
	utc8 := format.New(format.WithLocation(time.FixedZone("UTC+8", 8*3600)))

	convey.Convey("Given a service over a contest source", t, func() {
		src := &fakeContests{contests: []model.Contest{
			{ID: 101, Event: "Weekly Round", Start: "2025-07-16T12:00:00"},
		}}
		svc := app.New(
			app.WithContestSource(src),
			app.WithFormatter(utc8),
			app.WithDays(7),
		)

		convey.Convey("When asking for today's contests", func() {
			reply := svc.TodayContests(context.Background())

			convey.Convey("Then the window is one day and the reply is formatted", func() {
				convey.So(src.gotDays, convey.ShouldEqual, 1)
				convey.So(reply, convey.ShouldStartWith, "今日有1场比赛安排：")
			})
		})

		convey.Convey("When asking for recent contests", func() {
			reply := svc.RecentContests(context.Background())

			convey.Convey("Then the default window applies", func() {
				convey.So(src.gotDays, convey.ShouldEqual, 7)
				convey.So(reply, convey.ShouldStartWith, "近期有1场比赛安排：")
			})
		})

		convey.Convey("When asking with a platform filter and window", func() {
			rid := 163
			_ = svc.Contests(context.Background(), &rid, 10)

			convey.Convey("Then both pass through", func() {
				convey.So(src.gotDays, convey.ShouldEqual, 10)
				convey.So(*src.gotResource, convey.ShouldEqual, 163)
			})
		})

		convey.Convey("When the window argument is non-positive", func() {
			_ = svc.Contests(context.Background(), nil, 0)

			convey.Convey("Then the configured default fills in", func() {
				convey.So(src.gotDays, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When the source fails with an HTTP status", func() {
			src.err = &clist.FetchError{Reason: clist.ReasonStatus, Status: http.StatusTooManyRequests}
			reply := svc.RecentContests(context.Background())

			convey.Convey("Then the reply embeds the literal status code", func() {
				convey.So(reply, convey.ShouldEqual, "比赛获取失败,状态码429")
			})
		})

		convey.Convey("When the source fails on transport", func() {
			src.err = &clist.FetchError{Reason: clist.ReasonTransport, Err: errors.New("boom")}
			reply := svc.TodayContests(context.Background())

			convey.Convey("Then the reply embeds the zero sentinel", func() {
				convey.So(reply, convey.ShouldEqual, "比赛获取失败,状态码0")
			})
		})

		convey.Convey("When asking for problems", func() {
			src.problems = []model.Problem{{ID: 9001, Name: "A. Opening", Rating: 800}}
			reply := svc.Problems(context.Background(), 58371)

			convey.Convey("Then the reply is the formatted problem list", func() {
				convey.So(reply, convey.ShouldStartWith, "本场比赛有1条题目信息：")
			})
		})
	})
}

func TestBindAndCard(t *testing.T) {
	newService := func(t *testing.T, judge *fakeJudge, rasterCalls *int) (*app.Service, *bindings.Store) {
		t.Helper()
		store, err := bindings.Open(t.TempDir() + "/users.json")
		convey.So(err, convey.ShouldBeNil)

		renderer, err := render.New(t.TempDir(), render.WithRasterize(
			func(ctx context.Context, html string, width int, scale float64) ([]byte, error) {
				*rasterCalls++
				return []byte("png"), nil
			},
		))
		convey.So(err, convey.ShouldBeNil)

		svc := app.New(
			app.WithJudgeSource(judge),
			app.WithBindings(store),
			app.WithRenderer(renderer),
			app.WithClock(func() time.Time { return time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC) }),
		)
		return svc, store
	}

	convey.Convey("Given a resolvable judge user", t, func() {
		judge := &fakeJudge{uid: 334234, profile: sampleProfile("ouuan")}
		var rasterCalls int
		svc, store := newService(t, judge, &rasterCalls)

		convey.Convey("When binding a chat user", func() {
			err := svc.Bind(context.Background(), "10001", "ouuan")

			convey.Convey("Then the association persists", func() {
				convey.So(err, convey.ShouldBeNil)
				uid, err := store.Lookup("10001")
				convey.So(err, convey.ShouldBeNil)
				convey.So(uid, convey.ShouldEqual, 334234)
			})

			convey.Convey("Then the bound user's card renders", func() {
				path, err := svc.MyCard(context.Background(), "10001")
				convey.So(err, convey.ShouldBeNil)
				convey.So(path, convey.ShouldEndWith, "ouuan.png")
			})
		})

		convey.Convey("When generating the card twice for the same name", func() {
			first, err1 := svc.Card(context.Background(), "ouuan")
			second, err2 := svc.Card(context.Background(), "ouuan")

			convey.Convey("Then both calls return the same path with one rasterization", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(first, convey.ShouldEqual, second)
				convey.So(rasterCalls, convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given an unknown judge user", t, func() {
		judge := &fakeJudge{resolveErr: luogu.ErrUserNotFound}
		var rasterCalls int
		svc, _ := newService(t, judge, &rasterCalls)

		convey.Convey("When binding", func() {
			err := svc.Bind(context.Background(), "10001", "nobody")

			convey.Convey("Then the distinct not-found kind surfaces", func() {
				convey.So(errors.Is(err, luogu.ErrUserNotFound), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When asking for a card", func() {
			_, err := svc.Card(context.Background(), "nobody")

			convey.Convey("Then nothing rendered and not-found surfaces", func() {
				convey.So(errors.Is(err, luogu.ErrUserNotFound), convey.ShouldBeTrue)
				convey.So(rasterCalls, convey.ShouldEqual, 0)
			})
		})
	})

	convey.Convey("Given an unbound chat user", t, func() {
		judge := &fakeJudge{uid: 1, profile: sampleProfile("someone")}
		var rasterCalls int
		svc, _ := newService(t, judge, &rasterCalls)

		convey.Convey("When asking for my card", func() {
			_, err := svc.MyCard(context.Background(), "99999")

			convey.Convey("Then the distinct unbound kind surfaces", func() {
				convey.So(errors.Is(err, bindings.ErrUnbound), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a judge whose profile fetch fails", t, func() {
		judge := &fakeJudge{uid: 1, profileErr: luogu.ErrNoData}
		var rasterCalls int
		svc, _ := newService(t, judge, &rasterCalls)

		convey.Convey("When asking for a card", func() {
			_, err := svc.Card(context.Background(), "1")

			convey.Convey("Then the no-data kind surfaces without a render", func() {
				convey.So(errors.Is(err, luogu.ErrNoData), convey.ShouldBeTrue)
				convey.So(rasterCalls, convey.ShouldEqual, 0)
			})
		})
	})
}
