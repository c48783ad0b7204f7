package usecases

import (
	"time"

	"ico-admin.backend/internal/domain/entities"
)

const (
	dayLabelLayout   = "2006-01-02"
	monthLabelLayout = "2006-01"
)

// skeleton is the ordered list of bucket labels a chart is reindexed onto
type skeleton struct {
	labels      []string
	granularity entities.BucketGranularity
}

// buildSkeleton returns the buckets for a chart kind and filter type at now.
// Line charts look one period further back than sale charts, except for the
// current month and current year filters.
func buildSkeleton(kind entities.SeriesKind, filterType string, now time.Time) (skeleton, bool) {
	now = now.UTC()
	line := kind == entities.SeriesLine
	week := startOfISOWeek(now)
	month := startOfMonth(now)

	switch filterType {
	case entities.FilterThisWeekDate:
		if line {
			return daySkeleton(week.AddDate(0, 0, -7), 7), true
		}
		return daySkeleton(week, 7), true
	case entities.FilterLastWeek:
		if line {
			return daySkeleton(week.AddDate(0, 0, -14), 7), true
		}
		return daySkeleton(week.AddDate(0, 0, -7), 7), true
	case entities.FilterLastMonth:
		start := month.AddDate(0, -1, 0)
		if line {
			start = month.AddDate(0, -2, 0)
		}
		return daySkeleton(start, daysIn(start)), true
	case entities.FilterThisMonthDate:
		return daySkeleton(month, daysIn(month)), true
	case entities.FilterLast3Months:
		if line {
			return monthSkeleton(month.AddDate(0, -6, 0), 3), true
		}
		return monthSkeleton(month.AddDate(0, -3, 0), 3), true
	case entities.FilterLast6Months:
		if line {
			return monthSkeleton(month.AddDate(0, -12, 0), 6), true
		}
		return monthSkeleton(month.AddDate(0, -6, 0), 6), true
	case entities.FilterLastYear:
		years := -1
		if line {
			years = -2
		}
		return monthSkeleton(startOfYear(now).AddDate(years, 0, 0), 12), true
	case entities.FilterThisYearDate:
		return monthSkeleton(startOfYear(now), 12), true
	}
	return skeleton{}, false
}

func daySkeleton(start time.Time, n int) skeleton {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = start.AddDate(0, 0, i).Format(dayLabelLayout)
	}
	return skeleton{labels: labels, granularity: entities.BucketDay}
}

func monthSkeleton(start time.Time, n int) skeleton {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = start.AddDate(0, i, 0).Format(monthLabelLayout)
	}
	return skeleton{labels: labels, granularity: entities.BucketMonth}
}

// fill reindexes grouped counts onto the skeleton. Buckets outside it are dropped.
func (s skeleton) fill(counts []entities.BucketCount) []entities.SeriesPoint {
	byLabel := make(map[string]int64, len(counts))
	for _, c := range counts {
		byLabel[c.Label] += c.Count
	}
	points := make([]entities.SeriesPoint, len(s.labels))
	for i, label := range s.labels {
		points[i] = entities.SeriesPoint{Label: label, Value: byLabel[label]}
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// startOfISOWeek returns Monday 00:00 UTC of the week containing t
func startOfISOWeek(t time.Time) time.Time {
	day := startOfDay(t.UTC())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// startOfPreviousISOWeek returns Monday 00:00 UTC of the week before the one containing t
func startOfPreviousISOWeek(t time.Time) time.Time {
	return startOfISOWeek(t).AddDate(0, 0, -7)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func daysIn(month time.Time) int {
	return startOfMonth(month).AddDate(0, 1, -1).Day()
}
