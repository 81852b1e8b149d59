package models

// Analysis names, also used as chart and report identifiers
const (
	AnalysisTheftArrests            = "theft_crimes_and_arrests"
	AnalysisHomicidesByDistrict     = "homicide_crimes_and_arrests_by_district"
	AnalysisCrimeTypeCount          = "crime_type_count"
	AnalysisTheftsPerDistrict       = "thefts_per_district"
	AnalysisTheftArrestsPerDistrict = "theft_arrests_per_district"
	AnalysisHighestArrestRates      = "highest_arrest_rates"
	AnalysisLowestArrestRates       = "lowest_arrest_rates"
)

// AnalysisResult is the output of one descriptive analysis. Exactly one of
// Counts, Pairs or Rates is populated, depending on the analysis.
type AnalysisResult struct {
	Name   string          `json:"name"`
	Chart  ChartSpec       `json:"chart"`
	Counts []CategoryCount `json:"counts,omitempty"`
	Pairs  []PairCount     `json:"pairs,omitempty"`
	Rates  []ArrestRate    `json:"rates,omitempty"`
}
