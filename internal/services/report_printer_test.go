package services

import (
	"bytes"
	"math"
	"testing"

	"chicago-crime-analysis/internal/models"

	"github.com/fatih/color"
	"github.com/stretchr/testify/suite"
)

type ReportPrinterTestSuite struct {
	suite.Suite
	buf     *bytes.Buffer
	printer ReportPrinterInterface
	noColor bool
}

func (s *ReportPrinterTestSuite) SetupTest() {
	s.noColor = color.NoColor
	color.NoColor = true
	s.buf = &bytes.Buffer{}
	s.printer = NewReportPrinter()
}

func (s *ReportPrinterTestSuite) TearDownTest() {
	color.NoColor = s.noColor
}

func TestReportPrinterSuite(t *testing.T) {
	suite.Run(t, new(ReportPrinterTestSuite))
}

func (s *ReportPrinterTestSuite) TestPrintAnalysis_Counts() {
	s.printer.PrintAnalysis(s.buf, &models.AnalysisResult{
		Name:   models.AnalysisCrimeTypeCount,
		Chart:  models.ChartSpec{Title: "Chicago Crime Type Count", XLabel: "Crime Type"},
		Counts: []models.CategoryCount{{Category: models.CrimeTypeTheft, Count: 6}, {Category: "BATTERY", Count: 4}},
	})

	out := s.buf.String()
	s.Contains(out, "Chicago Crime Type Count")
	s.Contains(out, "CRIME TYPE")
	s.Contains(out, "BATTERY")
	s.Contains(out, "10")
}

func (s *ReportPrinterTestSuite) TestPrintAnalysis_Rates() {
	s.printer.PrintAnalysis(s.buf, &models.AnalysisResult{
		Name:  models.AnalysisHighestArrestRates,
		Chart: models.ChartSpec{Title: "Crimes With the 10 Highest Arrest Rate"},
		Rates: []models.ArrestRate{{
			Category:    models.CrimeTypeTheft,
			CrimeCount:  6,
			ArrestCount: 3,
			CrimeShare:  0.6,
			ArrestShare: 0.3,
			Rate:        0.5,
		}},
	})

	out := s.buf.String()
	s.Contains(out, "ARREST RATE")
	s.Contains(out, "0.6000")
	s.Contains(out, "0.3000")
	s.Contains(out, "0.500")
}

func (s *ReportPrinterTestSuite) TestPrintAnalysis_Pairs() {
	s.printer.PrintAnalysis(s.buf, &models.AnalysisResult{
		Name:  models.AnalysisHomicidesByDistrict,
		Chart: models.ChartSpec{Title: "Chicago Homicide Crimes and Arrests by District"},
		Pairs: []models.PairCount{{Primary: "7", Secondary: "FIRST DEGREE MURDER", CrimeCount: 12, ArrestCount: 5}},
	})

	out := s.buf.String()
	s.Contains(out, "FIRST DEGREE MURDER")
	s.Contains(out, "12")
}

func (s *ReportPrinterTestSuite) TestPrintAnalysis_Nil() {
	s.printer.PrintAnalysis(s.buf, nil)

	s.Empty(s.buf.String())
}

func (s *ReportPrinterTestSuite) TestPrintIndependence_Reject() {
	table, err := NewContingencyTable(districtRows, theftColumns, districtObserved())
	s.Require().NoError(err)
	result, err := NewIndependenceTester().Test(table, 9.88)
	s.Require().NoError(err)

	s.printer.PrintIndependence(s.buf, table, result)

	out := s.buf.String()
	s.Contains(out, "District 18")
	s.Contains(out, "3752")
	s.Contains(out, "140650")
	s.Contains(out, "statistic=892.3288 df=4 critical=9.8800")
	s.Contains(out, "We reject H0: district and theft arrests are not independent")
}

func (s *ReportPrinterTestSuite) TestPrintIndependence_FailToReject() {
	table, err := NewContingencyTable([]string{"District 1", "District 2"}, theftColumns, [][]float64{{10, 20}, {20, 10}})
	s.Require().NoError(err)
	result, err := NewIndependenceTester().Test(table, 9.88)
	s.Require().NoError(err)

	s.printer.PrintIndependence(s.buf, table, result)

	s.Contains(s.buf.String(), "We fail to reject H0: district and theft arrests are independent")
}

func (s *ReportPrinterTestSuite) TestPrintIndependence_UnlabelledTable() {
	table, err := NewContingencyTable(nil, nil, [][]float64{{10, 20}, {20, 10}})
	s.Require().NoError(err)
	result, err := NewIndependenceTester().Test(table, 9.88)
	s.Require().NoError(err)

	s.NotPanics(func() { s.printer.PrintIndependence(s.buf, table, result) })

	out := s.buf.String()
	s.Contains(out, "#0")
	s.Contains(out, "#1")
	s.Contains(out, "We fail to reject H0")
}

func (s *ReportPrinterTestSuite) TestPrintVerification() {
	s.printer.PrintVerification(s.buf, &VerificationReport{
		Table:         "chi_crime.crime_data",
		ArtifactRows:  3,
		TableRows:     3,
		ArtifactYears: []models.YearCount{{Year: 2016, Count: 3}},
		TableYears:    []models.YearCount{{Year: 2016, Count: 3}},
		RowCountMatch: true,
		YearsMatch:    true,
	})

	out := s.buf.String()
	s.Contains(out, "Verification of chi_crime.crime_data")
	s.Contains(out, "2016")
	s.Contains(out, "artifact and table match")
}

func (s *ReportPrinterTestSuite) TestPrintVerification_Differ() {
	s.printer.PrintVerification(s.buf, &VerificationReport{
		Table:         "chi_crime.crime_data",
		ArtifactRows:  3,
		TableRows:     2,
		ArtifactYears: []models.YearCount{{Year: 2016, Count: 3}},
		TableYears:    []models.YearCount{{Year: 2016, Count: 2}},
		YearsMatch:    false,
	})

	s.Contains(s.buf.String(), "artifact and table differ")
}

func (s *ReportPrinterTestSuite) TestFixed() {
	s.Equal("0.6000", fixed(0.6, 4))
	s.Equal("892.3288", fixed(892.3287756725009, 4))
	s.Equal("12", fixed(12, 0))
	s.Equal("NaN", fixed(math.NaN(), 2))
}
