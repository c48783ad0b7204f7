package entities

import "time"

// SeriesKind selects the sale or line chart
type SeriesKind string

const (
	SeriesSale SeriesKind = "sale"
	SeriesLine SeriesKind = "line"
)

// Filter types accepted by the graph endpoints
const (
	FilterThisWeekDate  = "thisWeekDate"
	FilterThisMonthDate = "thisMonthDate"
	FilterThisYearDate  = "thisYearDate"
	FilterLastWeek      = "lastWeek"
	FilterLastMonth     = "lastMonth"
	FilterLast3Months   = "last3Months"
	FilterLast6Months   = "last6Months"
	FilterLastYear      = "lastYear"
)

// BucketGranularity is the width of a chart bucket
type BucketGranularity int

const (
	BucketMonth BucketGranularity = iota
	BucketDay
)

// SeriesPoint is one chart bucket
type SeriesPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// BucketCount is a grouped count keyed by a date label
type BucketCount struct {
	Label string
	Count int64
}

// GraphInput is the body of the graph endpoints
type GraphInput struct {
	Option   string    `json:"option" validate:"required"`
	FromDate time.Time `json:"from_date" validate:"required"`
	ToDate   time.Time `json:"to_date" validate:"required"`
}

// GraphResult is a chart with the number of transactions behind it
type GraphResult struct {
	TransactionData []SeriesPoint `json:"transactionData"`
	TotalToken      int64         `json:"totalToken"`
}
