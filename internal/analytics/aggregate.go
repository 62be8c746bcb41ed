// Package analytics derives click metrics from the link collection. The
// aggregation is a pure function of the collection and an instant; no state
// is held between calls.
package analytics

import (
	"time"

	"github.com/chotalink/chotalink/internal/expiry"
	"github.com/chotalink/chotalink/internal/link"
)

const daysInWeek = 7

// Chart geometry, in viewBox units of a 100x100 canvas.
const (
	baseX       = 5.0
	maxX        = 95.0
	chartHeight = 85.0
	areaHeight  = 50.0
)

// DayBucket is one day of the weekly series.
type DayBucket struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Summary holds the headline metrics.
type Summary struct {
	TotalClicks int `json:"totalClicks"`
	ActiveLinks int `json:"activeLinks"`
}

// Point is a day bucket mapped onto normalized chart coordinates.
type Point struct {
	Label string  `json:"label"`
	Value int     `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// StartOfWeek returns local midnight of the Sunday beginning the week that
// contains now.
func StartOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// WeeklySeries partitions the current calendar week into seven day buckets
// and counts every link's click-history entries falling within each bucket.
// Bucket boundaries advance by calendar day so they stay aligned to local
// midnight across DST transitions.
func WeeklySeries(links []link.ShortLink, now time.Time) []DayBucket {
	start := StartOfWeek(now)
	series := make([]DayBucket, 0, daysInWeek)

	for pos := 0; pos < daysInWeek; pos++ {
		day := start.AddDate(0, 0, pos)
		next := day.AddDate(0, 0, 1)

		series = append(series, DayBucket{
			Label: day.Format("01/02"),
			Value: countClicksBetween(links, day, next),
		})
	}

	return series
}

func countClicksBetween(links []link.ShortLink, from, to time.Time) int {
	count := 0

	for i := range links {
		for _, click := range links[i].ClickHistory {
			if !click.Before(from) && click.Before(to) {
				count++
			}
		}
	}

	return count
}

// Summarize computes total clicks and the number of non-expired links.
func Summarize(links []link.ShortLink, now time.Time) Summary {
	var s Summary

	for i := range links {
		s.TotalClicks += links[i].Clicks

		if !expiry.IsExpiredAt(now, links[i].ExpiresAt) {
			s.ActiveLinks++
		}
	}

	return s
}

// ChartPoints maps a series onto plot coordinates for an area chart: x evenly
// spaced between the margins, y inversely proportional to the value relative
// to the series maximum. A single-point series collapses to a flat segment,
// and an all-zero series divides by one rather than zero.
func ChartPoints(series []DayBucket) []Point {
	maxValue := 1
	for _, bucket := range series {
		if bucket.Value > maxValue {
			maxValue = bucket.Value
		}
	}

	denominator := float64(len(series) - 1)
	if denominator < 1 {
		denominator = 1
	}

	points := make([]Point, 0, len(series))

	for index, bucket := range series {
		ratio := float64(bucket.Value) / float64(maxValue)

		points = append(points, Point{
			Label: bucket.Label,
			Value: bucket.Value,
			X:     baseX + float64(index)/denominator*(maxX-baseX),
			Y:     chartHeight - ratio*areaHeight,
		})
	}

	return points
}
