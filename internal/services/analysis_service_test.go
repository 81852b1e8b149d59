package services

import (
	"testing"

	"chicago-crime-analysis/internal/config"
	"chicago-crime-analysis/internal/models"

	"github.com/stretchr/testify/suite"
)

type AnalysisServiceTestSuite struct {
	suite.Suite
	service AnalysisServiceInterface
}

func (s *AnalysisServiceTestSuite) SetupTest() {
	s.service = NewAnalysisService(NewAggregator(models.DataEntryErrorDistrict), config.AnalysisConfig{
		MinSupport: 0.05,
		RankSize:   2,
	})
}

func TestAnalysisServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalysisServiceTestSuite))
}

func theftDescriptions() []models.CrimeRecord {
	return concat(
		repeat(crime(models.CrimeTypeTheft, "FROM BUILDING", 1, false), 6),
		repeat(crime(models.CrimeTypeTheft, "$500 AND UNDER", 1, false), 3),
		repeat(crime(models.CrimeTypeTheft, "$500 AND UNDER", 1, true), 2),
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 2, false), 3),
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 2, true), 1),
		repeat(crime(models.CrimeTypeTheft, "RETAIL THEFT", 2, true), 3),
		repeat(crime(models.CrimeTypeTheft, "POCKET-PICKING", 3, true), 2),
		repeat(crime(models.CrimeTypeTheft, "PURSE-SNATCHING", 3, true), 1),
		repeat(crime(models.CrimeTypeTheft, "PURSE-SNATCHING", 31, true), 9),
		repeat(crime("BATTERY", "SIMPLE", 3, true), 20),
	)
}

func (s *AnalysisServiceTestSuite) TestTheftCrimesAndArrests() {
	result := s.service.TheftCrimesAndArrests(theftDescriptions())

	s.Equal(models.AnalysisTheftArrests, result.Name)
	s.Equal([]models.PairCount{
		{Primary: models.CrimeTypeTheft, Secondary: "$500 AND UNDER", CrimeCount: 5, ArrestCount: 2},
		{Primary: models.CrimeTypeTheft, Secondary: "OVER $500", CrimeCount: 4, ArrestCount: 1},
	}, result.Pairs)

	chart := result.Chart
	s.Equal("Chicago_Theft_Crimes_and_Arrests_1.png", chart.FileName)
	s.Equal([]string{"$500 AND UNDER", "OVER $500"}, chart.Labels)
	s.True(chart.RotateTicks)
	s.Require().Len(chart.Series, 2)
	s.Equal(models.SeriesNotArrested, chart.Series[0].Name)
	s.Equal([]float64{5, 4}, chart.Series[0].Values)
	s.Equal([]float64{2, 1}, chart.Series[1].Values)
}

func (s *AnalysisServiceTestSuite) TestTheftCrimesAndArrests_FewDescriptions() {
	result := s.service.TheftCrimesAndArrests(rateFixture())

	s.Empty(result.Pairs)
	s.Empty(result.Chart.Labels)
}

func (s *AnalysisServiceTestSuite) TestHomicidesByDistrict() {
	records := concat(
		repeat(crime(models.CrimeTypeHomicide, "FIRST DEGREE MURDER", 10, true), 2),
		repeat(crime(models.CrimeTypeHomicide, "RECKLESS HOMICIDE", 10, false), 1),
		repeat(crime(models.CrimeTypeHomicide, "FIRST DEGREE MURDER", 2, false), 1),
		repeat(crime(models.CrimeTypeHomicide, "FIRST DEGREE MURDER", 31, true), 4),
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 2, true), 5),
	)

	result := s.service.HomicidesByDistrict(records)

	s.Equal(models.AnalysisHomicidesByDistrict, result.Name)
	s.Equal([]models.PairCount{
		{Primary: "2", Secondary: "FIRST DEGREE MURDER", CrimeCount: 1, ArrestCount: 0},
		{Primary: "10", Secondary: "FIRST DEGREE MURDER", CrimeCount: 2, ArrestCount: 2},
		{Primary: "10", Secondary: "RECKLESS HOMICIDE", CrimeCount: 1, ArrestCount: 0},
	}, result.Pairs)
	s.Equal([]string{"2", "10"}, result.Chart.Labels)
	s.Equal([]float64{1, 3}, result.Chart.Series[0].Values)
	s.Equal([]float64{0, 2}, result.Chart.Series[1].Values)
	s.True(result.Chart.HasLegend())
}

func (s *AnalysisServiceTestSuite) TestCrimeTypeCount() {
	result := s.service.CrimeTypeCount(rateFixture())

	s.Equal([]models.CategoryCount{
		{Category: models.CrimeTypeTheft, Count: 6},
		{Category: "BATTERY", Count: 3},
		{Category: models.CrimeTypeHomicide, Count: 1},
	}, result.Counts)
	s.Equal([]string{models.CrimeTypeTheft, "BATTERY", models.CrimeTypeHomicide}, result.Chart.Labels)
	s.Equal([]float64{6, 3, 1}, result.Chart.Series[0].Values)
	s.False(result.Chart.HasLegend())
	s.Equal(int64(len(rateFixture())), models.SumCounts(result.Counts))
}

func (s *AnalysisServiceTestSuite) TestTheftsPerDistrict() {
	records := concat(
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 12, false), 4),
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 2, true), 1),
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 18, true), 2),
		repeat(crime("BATTERY", "SIMPLE", 5, false), 7),
	)

	result := s.service.TheftsPerDistrict(records)

	s.Equal([]models.CategoryCount{
		{Category: "2", Count: 1},
		{Category: "12", Count: 4},
		{Category: "18", Count: 2},
	}, result.Counts)
	s.Equal("Number_of_Thefts_Per_District_in_Chicago.png", result.Chart.FileName)
}

func (s *AnalysisServiceTestSuite) TestTheftArrestsPerDistrict() {
	result := s.service.TheftArrestsPerDistrict(rateFixture())

	s.Equal([]models.CategoryCount{{Category: "1", Count: 3}}, result.Counts)
	s.Equal(models.AnalysisTheftArrestsPerDistrict, result.Name)
}

func (s *AnalysisServiceTestSuite) TestHighestArrestRates() {
	result := s.service.HighestArrestRates(rateFixture())

	s.Require().Len(result.Rates, 2)
	s.Equal(models.CrimeTypeHomicide, result.Rates[0].Category)
	s.Equal(models.CrimeTypeTheft, result.Rates[1].Category)

	chart := result.Chart
	s.Equal("Crimes_With_the_10_Highest_Arrest_Rate.png", chart.FileName)
	s.Equal("Percentage From All Crimes", chart.YLabel)
	s.InDelta(60, chart.Series[0].Values[1], 1e-9)
	s.InDelta(30, chart.Series[1].Values[1], 1e-9)
}

func (s *AnalysisServiceTestSuite) TestLowestArrestRates() {
	result := s.service.LowestArrestRates(rateFixture())

	s.Require().Len(result.Rates, 2)
	s.Equal("BATTERY", result.Rates[0].Category)
	s.Equal(0.0, result.Rates[0].Rate)
	s.Equal(models.CrimeTypeTheft, result.Rates[1].Category)
}

func (s *AnalysisServiceTestSuite) TestRunAll() {
	results := s.service.RunAll(rateFixture())

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	s.Equal([]string{
		models.AnalysisTheftArrests,
		models.AnalysisHomicidesByDistrict,
		models.AnalysisCrimeTypeCount,
		models.AnalysisTheftsPerDistrict,
		models.AnalysisTheftArrestsPerDistrict,
		models.AnalysisHighestArrestRates,
		models.AnalysisLowestArrestRates,
	}, names)
}

func (s *AnalysisServiceTestSuite) TestDefaults() {
	service := NewAnalysisService(NewAggregator(models.DataEntryErrorDistrict), config.AnalysisConfig{})

	result := service.HighestArrestRates(rateFixture())

	s.Len(result.Rates, 3)
}
