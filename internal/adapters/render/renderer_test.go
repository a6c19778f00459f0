package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/tabriszx/algoassist/internal/adapters/render"
	"github.com/tabriszx/algoassist/internal/domain/card"
	"github.com/tabriszx/algoassist/internal/domain/model"
)

func testContext() card.Context {
	badge := "管理员"
	p := &model.Profile{
		Data: model.ProfileData{
			User: model.User{
				UID: 1, Name: "chen_zhe", Badge: &badge, Color: "Purple",
				PassedProblemCount: 5,
			},
			DailyCounts: map[string][]int{"2025-07-16": {2, 4}},
			Passed:      []model.PassedProblem{{Difficulty: 1}, {Difficulty: 1}},
		},
	}
	return card.BuildContext(p, time.Date(2025, 7, 20, 12, 0, 0, 0, time.UTC))
}

func TestRender(t *testing.T) {
	convey.Convey("Given a renderer with a stub rasterizer", t, func() {
		dir := t.TempDir()
		var calls int
		var captured string
		r, err := render.New(dir, render.WithRasterize(
			func(ctx context.Context, html string, width int, scale float64) ([]byte, error) {
				calls++
				captured = html
				return []byte("png-bytes"), nil
			},
		))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When rendering a card", func() {
			path, err := r.Render(context.Background(), testContext())

			convey.Convey("Then the image lands at the identity path", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(path, convey.ShouldEqual, filepath.Join(dir, "chen_zhe.png"))
				data, readErr := os.ReadFile(path)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "png-bytes")
			})

			convey.Convey("Then the template substituted the context fields", func() {
				convey.So(captured, convey.ShouldContainSubstring, "chen_zhe")
				convey.So(captured, convey.ShouldContainSubstring, "管理员")
				convey.So(captured, convey.ShouldContainSubstring, "7月")
			})

			convey.Convey("Then a second render is a cache hit", func() {
				again, err := r.Render(context.Background(), testContext())
				convey.So(err, convey.ShouldBeNil)
				convey.So(again, convey.ShouldEqual, path)
				convey.So(calls, convey.ShouldEqual, 1)
			})

			convey.Convey("Then no temp artifacts are left behind", func() {
				entries, readErr := os.ReadDir(dir)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 1)
			})
		})
	})

	convey.Convey("Given a renderer whose rasterizer fails", t, func() {
		dir := t.TempDir()
		r, err := render.New(dir, render.WithRasterize(
			func(ctx context.Context, html string, width int, scale float64) ([]byte, error) {
				return nil, errors.New("no chrome installed")
			},
		))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When rendering a card", func() {
			path, err := r.Render(context.Background(), testContext())

			convey.Convey("Then the failure is the distinct unavailable kind", func() {
				convey.So(path, convey.ShouldBeEmpty)
				convey.So(errors.Is(err, render.ErrUnavailable), convey.ShouldBeTrue)
			})

			convey.Convey("Then no partial image is left behind", func() {
				entries, readErr := os.ReadDir(dir)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldBeEmpty)
			})
		})
	})

	convey.Convey("Given a markup-bearing badge", t, func() {
		dir := t.TempDir()
		var captured string
		r, err := render.New(dir, render.WithRasterize(
			func(ctx context.Context, html string, width int, scale float64) ([]byte, error) {
				captured = html
				return []byte("png"), nil
			},
		))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When rendering", func() {
			evil := `<script>alert(1)</script>`
			p := &model.Profile{Data: model.ProfileData{User: model.User{Name: "evil", Badge: &evil}}}
			c := card.BuildContext(p, time.Now())
			_, err := r.Render(context.Background(), c)

			convey.Convey("Then the rendered HTML carries no live script tag", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(captured, convey.ShouldNotContainSubstring, "<script>alert(1)")
			})
		})
	})
}
