// Package format renders query results into user-facing reply text.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/tabriszx/algoassist/internal/domain/model"
)

const (
	localTimeLayout = "2006-01-02 15:04"
	noLink          = "无链接"
)

// Formatter turns record lists and failures into reply strings. The zero
// value renders times in the process-local timezone.
type Formatter struct {
	loc *time.Location
}

// Option applies a configuration option to the Formatter.
type Option func(*Formatter)

// WithLocation sets the timezone used for contest start times.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.loc = loc
		}
	}
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{loc: time.Local}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TodayContests renders the today's-contests reply.
func (f *Formatter) TodayContests(contests []model.Contest) string {
	if len(contests) == 0 {
		return "今天没有比赛安排哦~"
	}
	return fmt.Sprintf("今日有%d场比赛安排：\n\n%s", len(contests), f.contestBlocks(contests))
}

// RecentContests renders the upcoming-contests reply, shared by the default
// window and the filtered query.
func (f *Formatter) RecentContests(contests []model.Contest) string {
	if len(contests) == 0 {
		return "近期没有比赛安排哦~"
	}
	return fmt.Sprintf("近期有%d场比赛安排：\n\n%s", len(contests), f.contestBlocks(contests))
}

// Problems renders the problem-list reply for one contest.
func (f *Formatter) Problems(problems []model.Problem) string {
	if len(problems) == 0 {
		return "本场比赛暂无题目信息~"
	}
	blocks := make([]string, 0, len(problems))
	for _, p := range problems {
		link := p.URL
		if link == "" {
			link = noLink
		}
		blocks = append(blocks, fmt.Sprintf(
			"🏆题目名称: %s\n⏰题目难度: %v\n📌题目ID: %d\n🔗题目链接: %s",
			p.Name, p.Rating, p.ID, link,
		))
	}
	return fmt.Sprintf("本场比赛有%d条题目信息：\n\n%s", len(problems), strings.Join(blocks, "\n\n"))
}

// ContestFailure renders a fetch failure, embedding the integer sentinel
// (HTTP status code, or 0 for transport/timeout failures).
func (f *Formatter) ContestFailure(sentinel int) string {
	return fmt.Sprintf("比赛获取失败,状态码%d", sentinel)
}

// ProblemFailure renders a problem fetch failure.
func (f *Formatter) ProblemFailure(sentinel int) string {
	return fmt.Sprintf("题目获取失败,状态码%d", sentinel)
}

func (f *Formatter) contestBlocks(contests []model.Contest) string {
	blocks := make([]string, 0, len(contests))
	for _, c := range contests {
		link := c.Href
		if link == "" {
			link = noLink
		}
		blocks = append(blocks, fmt.Sprintf(
			"🏆比赛名称: %s\n⏰比赛时间: %s\n📌比赛ID: %d\n🔗比赛链接: %s",
			c.Event, f.localTime(c.Start), c.ID, link,
		))
	}
	return strings.Join(blocks, "\n\n")
}

// localTime parses an ISO start instant and renders it in the configured
// timezone. Timestamps without an offset are UTC on this API.
func (f *Formatter) localTime(start string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, start, time.UTC); err == nil {
			return t.In(f.loc).Format(localTimeLayout)
		}
	}
	return start
}
