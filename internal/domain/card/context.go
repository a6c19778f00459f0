package card

import (
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/tabriszx/algoassist/internal/domain/model"
)

// PrizeRow is one award line on the card, award level pre-colored.
type PrizeRow struct {
	Left      string
	RightHTML template.HTML
}

// Context is the transient view-model one card render consumes. It is never
// persisted; the rasterized image is the artifact.
type Context struct {
	Name       string
	NameColor  string
	NameStyled template.HTML
	NameBadge  template.HTML
	UID        int64
	Slogan     string
	Avatar     string
	Background string

	Passed    int
	Submitted int
	Following int
	Followers int
	Elo       string
	Quality   float64

	Prizes    []string
	PrizeRows []PrizeRow
	DiffBars  []Bar
	Heatmap   Heatmap

	CurrentTime string
}

// BuildContext assembles the card view-model from a merged profile.
// User-controlled text that lands inside markup (the badge label) is escaped
// here; everything else goes through html/template's contextual escaping.
func BuildContext(p *model.Profile, now time.Time) Context {
	user := p.Data.User

	color, ok := nameColors[user.Color]
	if !ok {
		color = defaultNameColor
	}

	var badge template.HTML
	if user.Badge != nil {
		badge = template.HTML(fmt.Sprintf(
			"<span class='name-badge' style='background:%s;color:#fff'>%s</span>",
			color, html.EscapeString(*user.Badge),
		))
	}

	styled := template.HTML(fmt.Sprintf(
		"<span style='color:%s'>%s</span>",
		color, html.EscapeString(user.Name),
	))

	elo := "--"
	if len(p.Data.Elo) > 0 {
		elo = strconv.Itoa(p.Data.Elo[0].Rating)
	}

	prizes, prizeRows := buildPrizes(p.Data.Prizes)

	return Context{
		Name:        user.Name,
		NameColor:   color,
		NameStyled:  styled,
		NameBadge:   badge,
		UID:         int64(user.UID),
		Slogan:      user.Slogan,
		Avatar:      user.Avatar,
		Background:  user.Background,
		Passed:      user.PassedProblemCount,
		Submitted:   user.SubmittedProblemCount,
		Following:   user.FollowingCount,
		Followers:   user.FollowerCount,
		Elo:         elo,
		Quality:     QualityScore(p.Data.Passed, user.PassedProblemCount),
		Prizes:      prizes,
		PrizeRows:   prizeRows,
		DiffBars:    DiffBars(p.Data.Passed),
		Heatmap:     BuildHeatmap(p.Data.DailyCounts),
		CurrentTime: now.Format("2006-01-02 15:04:05"),
	}
}

// buildPrizes flattens the award list, skipping fully empty rows and picking
// a medal-tier color from the award level text.
func buildPrizes(entries []model.PrizeEntry) ([]string, []PrizeRow) {
	var prizes []string
	var rows []PrizeRow
	for _, entry := range entries {
		p := entry.Prize
		if p.Year == 0 && p.Contest == "" && p.Level == "" {
			continue
		}
		year := ""
		if p.Year != 0 {
			year = strconv.Itoa(p.Year)
		}
		prizes = append(prizes, strings.TrimSpace(strings.Join([]string{year, p.Contest, p.Level}, " ")))
		rows = append(rows, PrizeRow{
			Left: fmt.Sprintf("[%d] %s", p.Year, p.Contest),
			RightHTML: template.HTML(fmt.Sprintf(
				"<span style='color:%s'>%s</span>",
				prizeColor(p.Level), html.EscapeString(p.Level),
			)),
		})
	}
	return prizes, rows
}

// prizeColor keys off the medal wording: gold/first tier, silver/second,
// bronze/third, everything else a neutral accent.
func prizeColor(level string) string {
	switch {
	case strings.Contains(level, "一") || strings.Contains(level, "金"):
		return prizeColors["first"]
	case strings.Contains(level, "二") || strings.Contains(level, "银"):
		return prizeColors["second"]
	case strings.Contains(level, "三") || strings.Contains(level, "铜"):
		return prizeColors["third"]
	default:
		return prizeColors["other"]
	}
}
