package card

import (
	"fmt"
	"math"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	heatmapRows  = 7
	maxHeatLevel = 6
)

// weekdayLabels is the fixed Sunday-first row labeling.
var weekdayLabels = []string{"日", "一", "二", "三", "四", "五", "六"}

// Heatmap is the calendar-aligned activity grid: 7 Sunday-first rows, one
// column per week, intensity levels 0-6.
type Heatmap struct {
	Rows          [][]int
	WeekdayLabels []string
	MonthLabels   []string
}

// BuildHeatmap buckets daily [count, heat] pairs into the whole-week-aligned
// grid. Unparseable dates are skipped, not zeroed. With no valid entries the
// grid degenerates to an all-zero 7x7 placeholder with no month labels.
func BuildHeatmap(daily map[string][]int) Heatmap {
	parsed := make(map[time.Time]int)
	maxHeat := 0
	for ds, arr := range daily {
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			continue
		}
		heat := 0
		if len(arr) > 1 {
			heat = arr[1]
		}
		parsed[d] = heat
		if heat > maxHeat {
			maxHeat = heat
		}
	}

	if len(parsed) == 0 {
		return emptyHeatmap()
	}

	var minDay, maxDay time.Time
	for d := range parsed {
		if minDay.IsZero() || d.Before(minDay) {
			minDay = d
		}
		if d.After(maxDay) {
			maxDay = d
		}
	}

	// Pad outward so every column is a whole Sunday..Saturday week.
	start := minDay.AddDate(0, 0, -int(minDay.Weekday()))
	end := maxDay.AddDate(0, 0, 6-int(maxDay.Weekday()))
	totalDays := int(end.Sub(start).Hours()/24) + 1
	weeks := totalDays / heatmapRows

	rows := make([][]int, heatmapRows)
	for r := range rows {
		rows[r] = make([]int, weeks)
	}
	monthLabels := make([]string, weeks)

	prevMonth := time.Month(0)
	for i := 0; i < totalDays; i++ {
		cur := start.AddDate(0, 0, i)
		col := i / heatmapRows

		if cur.Month() != prevMonth {
			if monthLabels[col] == "" {
				monthLabels[col] = fmt.Sprintf("%d月", int(cur.Month()))
			}
			prevMonth = cur.Month()
		}

		rows[int(cur.Weekday())][col] = heatLevel(parsed[cur], maxHeat)
	}

	return Heatmap{Rows: rows, WeekdayLabels: weekdayLabels, MonthLabels: monthLabels}
}

// heatLevel maps a day's heat onto 0-6: zero heat stays 0, anything else
// lands in 1..6 proportionally to the range maximum.
func heatLevel(heat, maxHeat int) int {
	if maxHeat <= 0 || heat <= 0 {
		return 0
	}
	level := int(math.Round(float64(heat) / float64(maxHeat) * maxHeatLevel))
	if level < 1 {
		return 1
	}
	if level > maxHeatLevel {
		return maxHeatLevel
	}
	return level
}

func emptyHeatmap() Heatmap {
	rows := make([][]int, heatmapRows)
	for r := range rows {
		rows[r] = make([]int, heatmapRows)
	}
	return Heatmap{Rows: rows, WeekdayLabels: weekdayLabels}
}
