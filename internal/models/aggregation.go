package models

import (
	"math"
	"strconv"
)

// CategoryCount is the number of records sharing one category value
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// PairCount holds crime and arrest counts for a (primary, secondary) key pair.
// Either count may be zero when only one side of the merge had the pair.
type PairCount struct {
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	CrimeCount  int64  `json:"crime_count"`
	ArrestCount int64  `json:"arrest_count"`
}

// ArrestRate compares a category's share of arrests with its share of all crimes.
// A rate above 1 means the category is over-represented among arrests.
type ArrestRate struct {
	Category    string  `json:"category"`
	CrimeCount  int64   `json:"crime_count"`
	ArrestCount int64   `json:"arrest_count"`
	CrimeShare  float64 `json:"crime_share"`
	ArrestShare float64 `json:"arrest_share"`
	Rate        float64 `json:"arrest_rate"`
}

// YearCount is the number of records reported in a year
type YearCount struct {
	Year  int   `json:"year" gorm:"column:year"`
	Count int64 `json:"count" gorm:"column:ct"`
}

// SumCounts totals the counts of a category partition
func SumCounts(counts []CategoryCount) int64 {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return total
}

func formatWhole(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
