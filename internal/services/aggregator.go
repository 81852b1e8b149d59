package services

import (
	"sort"
	"strconv"

	"chicago-crime-analysis/internal/models"
)

// DefaultMinSupport is the crime share at or below which a category's arrest
// rate is too noisy to rank
const DefaultMinSupport = 0.00075

// KeyFunc extracts a categorical value used as an aggregation key. An empty key
// means the value is missing and the record is not grouped.
type KeyFunc func(r *models.CrimeRecord) string

// RecordFilter selects records for an aggregation
type RecordFilter func(r *models.CrimeRecord) bool

func ByCrimeType(r *models.CrimeRecord) string   { return r.CrimeType }
func ByDescription(r *models.CrimeRecord) string { return r.Description }
func ByDistrict(r *models.CrimeRecord) string    { return r.DistrictLabel() }
func ByYear(r *models.CrimeRecord) string        { return strconv.Itoa(r.Year) }

// Arrested selects records that ended in an arrest
func Arrested(r *models.CrimeRecord) bool { return r.Arrest }

// OfCrimeType selects records of one crime type
func OfCrimeType(crimeType string) RecordFilter {
	return func(r *models.CrimeRecord) bool {
		return r.CrimeType == crimeType
	}
}

// AllOf combines filters with logical AND; nil filters are ignored
func AllOf(filters ...RecordFilter) RecordFilter {
	return func(r *models.CrimeRecord) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

type aggregator struct {
	excludedDistrict int
}

// NewAggregator creates an aggregator that ignores records from excludedDistrict
func NewAggregator(excludedDistrict int) AggregatorInterface {
	return &aggregator{excludedDistrict: excludedDistrict}
}

func (a *aggregator) included(r *models.CrimeRecord, filter RecordFilter) bool {
	if r.HasDistrict(a.excludedDistrict) {
		return false
	}
	return filter == nil || filter(r)
}

// CountBy groups the selected records by key and counts each group. The result
// is ordered by count descending, then by key.
func (a *aggregator) CountBy(records []models.CrimeRecord, key KeyFunc, filter RecordFilter) []models.CategoryCount {
	counts := make(map[string]int64)
	for i := range records {
		r := &records[i]
		if !a.included(r, filter) {
			continue
		}
		k := key(r)
		if k == "" {
			continue
		}
		counts[k]++
	}

	result := make([]models.CategoryCount, 0, len(counts))
	for k, c := range counts {
		result = append(result, models.CategoryCount{Category: k, Count: c})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return lessKey(result[i].Category, result[j].Category)
	})

	return result
}

// CountByPair counts selected records per (primary, secondary) pair, together
// with how many of them ended in an arrest. Pairs are ordered by primary then
// secondary key.
func (a *aggregator) CountByPair(records []models.CrimeRecord, primary, secondary KeyFunc, filter RecordFilter) []models.PairCount {
	type pairKey struct{ p, s string }
	pairs := make(map[pairKey]*models.PairCount)

	for i := range records {
		r := &records[i]
		if !a.included(r, filter) {
			continue
		}
		pk := pairKey{p: primary(r), s: secondary(r)}
		if pk.p == "" || pk.s == "" {
			continue
		}

		pc, ok := pairs[pk]
		if !ok {
			pc = &models.PairCount{Primary: pk.p, Secondary: pk.s}
			pairs[pk] = pc
		}
		pc.CrimeCount++
		if r.Arrest {
			pc.ArrestCount++
		}
	}

	result := make([]models.PairCount, 0, len(pairs))
	for _, pc := range pairs {
		result = append(result, *pc)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Primary != result[j].Primary {
			return lessKey(result[i].Primary, result[j].Primary)
		}
		return lessKey(result[i].Secondary, result[j].Secondary)
	})

	return result
}

// ArrestRates derives crime share, arrest share and arrest rate per category.
// Shares are relative to every included record, keyed or not. Categories with
// crime share at or below minSupport are dropped. The result is ordered by rate
// ascending.
func (a *aggregator) ArrestRates(records []models.CrimeRecord, key KeyFunc, minSupport float64) []models.ArrestRate {
	crimes := make(map[string]int64)
	arrests := make(map[string]int64)
	var total int64

	for i := range records {
		r := &records[i]
		if !a.included(r, nil) {
			continue
		}
		total++
		k := key(r)
		if k == "" {
			continue
		}
		crimes[k]++
		if r.Arrest {
			arrests[k]++
		}
	}

	if total == 0 {
		return []models.ArrestRate{}
	}

	result := make([]models.ArrestRate, 0, len(crimes))
	for k, count := range crimes {
		if count == 0 {
			continue
		}

		crimeShare := float64(count) / float64(total)
		if crimeShare <= minSupport {
			continue
		}

		arrestShare := float64(arrests[k]) / float64(total)
		result = append(result, models.ArrestRate{
			Category:    k,
			CrimeCount:  count,
			ArrestCount: arrests[k],
			CrimeShare:  crimeShare,
			ArrestShare: arrestShare,
			Rate:        arrestShare / crimeShare,
		})
	}

	sortByRate(result, true)
	return result
}

// TopArrestRates returns up to n categories with the highest arrest rate
func (a *aggregator) TopArrestRates(rates []models.ArrestRate, n int) []models.ArrestRate {
	return rankRates(rates, n, false)
}

// BottomArrestRates returns up to n categories with the lowest arrest rate
func (a *aggregator) BottomArrestRates(rates []models.ArrestRate, n int) []models.ArrestRate {
	return rankRates(rates, n, true)
}

func rankRates(rates []models.ArrestRate, n int, ascending bool) []models.ArrestRate {
	ranked := make([]models.ArrestRate, len(rates))
	copy(ranked, rates)
	sortByRate(ranked, ascending)

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func sortByRate(rates []models.ArrestRate, ascending bool) {
	sort.SliceStable(rates, func(i, j int) bool {
		if rates[i].Rate != rates[j].Rate {
			if ascending {
				return rates[i].Rate < rates[j].Rate
			}
			return rates[i].Rate > rates[j].Rate
		}
		return rates[i].Category < rates[j].Category
	})
}

// lessKey orders numeric keys numerically (districts, years) and everything
// else lexically
func lessKey(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil && fa != fb {
		return fa < fb
	}
	return a < b
}
