// Package card derives the profile card view-model: quality score,
// difficulty histogram and activity heatmap.
package card

import (
	"math"

	"github.com/tabriszx/algoassist/internal/domain/model"
)

// Histogram bar width mapping: zero counts collapse, nonzero counts map
// into [barMinWidth, barMinWidth+barWidthSpan] px proportionally to the max.
const (
	barMinWidth  = 12
	barWidthSpan = 68
)

// Bar is one row of the difficulty histogram.
type Bar struct {
	Label string
	Value int
	Width int
	Color string
}

// countByDifficulty groups the solved list by difficulty level.
func countByDifficulty(passed []model.PassedProblem) map[int]int {
	counts := make(map[int]int)
	for _, p := range passed {
		counts[p.Difficulty]++
	}
	return counts
}

// solveWeight is the per-level contribution: higher levels weigh in
// superlinearly, volume within a level logarithmically.
func solveWeight(level, count int) float64 {
	d := float64(level)
	c := float64(count)
	return (math.Pow(2, d-1) + math.Log2(math.Pow(c, d/6)+1)) * c
}

// QualityScore computes the difficulty-weighted quality of a solved-problem
// history. Unrated problems count into neither the weighted sum nor the
// divisor. A divisor of zero or less (all solved problems unrated, or an
// inconsistent passed total) yields 0 rather than an undefined value.
func QualityScore(passed []model.PassedProblem, passedTotal int) float64 {
	counts := countByDifficulty(passed)

	var sum float64
	for level, count := range counts {
		if level == unratedLevel || count == 0 {
			continue
		}
		sum += solveWeight(level, count)
	}

	divisor := passedTotal - counts[unratedLevel]
	if divisor <= 0 {
		return 0
	}

	quality := sum / float64(divisor) * 10
	return math.Round(quality*100) / 100
}

// DiffBars builds the 8-level difficulty histogram, rated tiers in order and
// unrated last.
func DiffBars(passed []model.PassedProblem) []Bar {
	counts := countByDifficulty(passed)

	maxCount := 0
	for _, level := range barLevels {
		if counts[level] > maxCount {
			maxCount = counts[level]
		}
	}

	bars := make([]Bar, 0, len(barLevels))
	for i, level := range barLevels {
		count := counts[level]
		width := 0
		if count > 0 {
			width = barMinWidth + int(float64(count)/float64(maxCount)*barWidthSpan)
		}
		bars = append(bars, Bar{
			Label: difficultyNames[level],
			Value: count,
			Width: width,
			Color: levelColors[i],
		})
	}
	return bars
}
