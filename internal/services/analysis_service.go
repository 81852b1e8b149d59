package services

import (
	"sort"

	"chicago-crime-analysis/internal/config"
	"chicago-crime-analysis/internal/models"
)

// theftTailTrim is the number of least frequent theft descriptions left off the chart
const theftTailTrim = 3

type analysisService struct {
	aggregator AggregatorInterface
	minSupport float64
	rankSize   int
}

// NewAnalysisService creates the descriptive analyses over an aggregator
func NewAnalysisService(aggregator AggregatorInterface, cfg config.AnalysisConfig) AnalysisServiceInterface {
	minSupport := cfg.MinSupport
	if minSupport <= 0 {
		minSupport = DefaultMinSupport
	}
	rankSize := cfg.RankSize
	if rankSize <= 0 {
		rankSize = 10
	}

	return &analysisService{
		aggregator: aggregator,
		minSupport: minSupport,
		rankSize:   rankSize,
	}
}

// TheftCrimesAndArrests counts thefts and theft arrests per description.
// Descriptions without any arrest are left out, as are the three least
// frequent remaining ones.
func (s *analysisService) TheftCrimesAndArrests(records []models.CrimeRecord) *models.AnalysisResult {
	thefts := s.aggregator.CountBy(records, ByDescription, OfCrimeType(models.CrimeTypeTheft))
	arrests := s.aggregator.CountBy(records, ByDescription, AllOf(OfCrimeType(models.CrimeTypeTheft), Arrested))

	arrestsByDescription := make(map[string]int64, len(arrests))
	for _, a := range arrests {
		arrestsByDescription[a.Category] = a.Count
	}

	pairs := make([]models.PairCount, 0, len(thefts))
	for _, t := range thefts {
		n, ok := arrestsByDescription[t.Category]
		if !ok {
			continue
		}
		pairs = append(pairs, models.PairCount{
			Primary:     models.CrimeTypeTheft,
			Secondary:   t.Category,
			CrimeCount:  t.Count,
			ArrestCount: n,
		})
	}

	if len(pairs) > theftTailTrim {
		pairs = pairs[:len(pairs)-theftTailTrim]
	} else {
		pairs = pairs[:0]
	}

	labels := make([]string, len(pairs))
	crimes := make([]float64, len(pairs))
	arrested := make([]float64, len(pairs))
	for i, p := range pairs {
		labels[i] = p.Secondary
		crimes[i] = float64(p.CrimeCount)
		arrested[i] = float64(p.ArrestCount)
	}

	return &models.AnalysisResult{
		Name:  models.AnalysisTheftArrests,
		Pairs: pairs,
		Chart: models.ChartSpec{
			Title:       "Most Frequent Theft Crimes in Chicago and Their Arrests",
			XLabel:      "Theft Type",
			YLabel:      "Count",
			FileName:    "Chicago_Theft_Crimes_and_Arrests_1.png",
			Labels:      labels,
			RotateTicks: true,
			Series: []models.ChartSeries{
				{Name: models.SeriesNotArrested, Values: crimes},
				{Name: models.SeriesArrested, Values: arrested},
			},
		},
	}
}

// HomicidesByDistrict counts homicides and homicide arrests per district and
// description. The chart sums descriptions within each district.
func (s *analysisService) HomicidesByDistrict(records []models.CrimeRecord) *models.AnalysisResult {
	pairs := s.aggregator.CountByPair(records, ByDistrict, ByDescription, OfCrimeType(models.CrimeTypeHomicide))

	var labels []string
	var crimes, arrested []float64
	for _, p := range pairs {
		last := len(labels) - 1
		if last < 0 || labels[last] != p.Primary {
			labels = append(labels, p.Primary)
			crimes = append(crimes, 0)
			arrested = append(arrested, 0)
			last++
		}
		crimes[last] += float64(p.CrimeCount)
		arrested[last] += float64(p.ArrestCount)
	}

	return &models.AnalysisResult{
		Name:  models.AnalysisHomicidesByDistrict,
		Pairs: pairs,
		Chart: models.ChartSpec{
			Title:    "Chicago Homicide Crimes and Arrests by District",
			XLabel:   "District",
			YLabel:   "Crime Count",
			FileName: "Chicago_Homicide_Crimes_and_Arrests_by_District.png",
			Labels:   labels,
			Series: []models.ChartSeries{
				{Name: models.SeriesNotArrested, Values: crimes},
				{Name: models.SeriesArrested, Values: arrested},
			},
		},
	}
}

// CrimeTypeCount counts records per crime type, most frequent first
func (s *analysisService) CrimeTypeCount(records []models.CrimeRecord) *models.AnalysisResult {
	counts := s.aggregator.CountBy(records, ByCrimeType, nil)

	return &models.AnalysisResult{
		Name:   models.AnalysisCrimeTypeCount,
		Counts: counts,
		Chart: countChart(counts, models.ChartSpec{
			Title:       "Chicago Crime Type Count",
			XLabel:      "Crime Type",
			YLabel:      "Crime Count",
			FileName:    "Chicago_Crime_Type_Count.png",
			RotateTicks: true,
		}),
	}
}

// TheftsPerDistrict counts thefts per district, ordered by district
func (s *analysisService) TheftsPerDistrict(records []models.CrimeRecord) *models.AnalysisResult {
	counts := sortByCategory(s.aggregator.CountBy(records, ByDistrict, OfCrimeType(models.CrimeTypeTheft)))

	return &models.AnalysisResult{
		Name:   models.AnalysisTheftsPerDistrict,
		Counts: counts,
		Chart: countChart(counts, models.ChartSpec{
			Title:    "Number of Thefts Per District in Chicago",
			XLabel:   "District",
			YLabel:   "Number of Thefts",
			FileName: "Number_of_Thefts_Per_District_in_Chicago.png",
		}),
	}
}

// TheftArrestsPerDistrict counts theft arrests per district, ordered by district
func (s *analysisService) TheftArrestsPerDistrict(records []models.CrimeRecord) *models.AnalysisResult {
	counts := sortByCategory(s.aggregator.CountBy(records, ByDistrict, AllOf(OfCrimeType(models.CrimeTypeTheft), Arrested)))

	return &models.AnalysisResult{
		Name:   models.AnalysisTheftArrestsPerDistrict,
		Counts: counts,
		Chart: countChart(counts, models.ChartSpec{
			Title:    "Number of Arrests for Theft Crimes Per District",
			XLabel:   "District",
			YLabel:   "Number of Arrests for Theft Crimes",
			FileName: "Number_of_Arrests_for_Theft_Crimes_Per_District.png",
		}),
	}
}

// HighestArrestRates ranks crime types by arrest rate, highest first
func (s *analysisService) HighestArrestRates(records []models.CrimeRecord) *models.AnalysisResult {
	rates := s.aggregator.ArrestRates(records, ByCrimeType, s.minSupport)
	top := s.aggregator.TopArrestRates(rates, s.rankSize)

	return &models.AnalysisResult{
		Name:  models.AnalysisHighestArrestRates,
		Rates: top,
		Chart: rateChart(top, "Crimes With the 10 Highest Arrest Rate", "Crimes_With_the_10_Highest_Arrest_Rate.png"),
	}
}

// LowestArrestRates ranks crime types by arrest rate, lowest first
func (s *analysisService) LowestArrestRates(records []models.CrimeRecord) *models.AnalysisResult {
	rates := s.aggregator.ArrestRates(records, ByCrimeType, s.minSupport)
	bottom := s.aggregator.BottomArrestRates(rates, s.rankSize)

	return &models.AnalysisResult{
		Name:  models.AnalysisLowestArrestRates,
		Rates: bottom,
		Chart: rateChart(bottom, "Crimes With the 10 Lowest Arrest Rate", "Crimes_With_the_10_Lowest_Arrest_Rate.png"),
	}
}

// RunAll runs every analysis in a fixed order
func (s *analysisService) RunAll(records []models.CrimeRecord) []*models.AnalysisResult {
	return []*models.AnalysisResult{
		s.TheftCrimesAndArrests(records),
		s.HomicidesByDistrict(records),
		s.CrimeTypeCount(records),
		s.TheftsPerDistrict(records),
		s.TheftArrestsPerDistrict(records),
		s.HighestArrestRates(records),
		s.LowestArrestRates(records),
	}
}

func countChart(counts []models.CategoryCount, spec models.ChartSpec) models.ChartSpec {
	spec.Labels = make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		spec.Labels[i] = c.Category
		values[i] = float64(c.Count)
	}
	spec.Series = []models.ChartSeries{{Name: "Count", Values: values}}
	return spec
}

// rateChart plots crime share against arrest share, both as percentages of all crimes
func rateChart(rates []models.ArrestRate, title, fileName string) models.ChartSpec {
	labels := make([]string, len(rates))
	crimeShare := make([]float64, len(rates))
	arrestShare := make([]float64, len(rates))
	for i, r := range rates {
		labels[i] = r.Category
		crimeShare[i] = r.CrimeShare * 100
		arrestShare[i] = r.ArrestShare * 100
	}

	return models.ChartSpec{
		Title:       title,
		XLabel:      "Crime Type",
		YLabel:      "Percentage From All Crimes",
		FileName:    fileName,
		Labels:      labels,
		RotateTicks: true,
		Series: []models.ChartSeries{
			{Name: models.SeriesNotArrested, Values: crimeShare},
			{Name: models.SeriesArrested, Values: arrestShare},
		},
	}
}

func sortByCategory(counts []models.CategoryCount) []models.CategoryCount {
	sorted := make([]models.CategoryCount, len(counts))
	copy(sorted, counts)
	sort.Slice(sorted, func(i, j int) bool {
		return lessKey(sorted[i].Category, sorted[j].Category)
	})
	return sorted
}
