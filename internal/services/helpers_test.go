package services

import (
	"chicago-crime-analysis/internal/models"
)

func crime(crimeType, description string, district float64, arrest bool) models.CrimeRecord {
	d := district
	return models.CrimeRecord{
		CrimeType:   crimeType,
		Description: description,
		District:    &d,
		Arrest:      arrest,
		Year:        2016,
	}
}

func repeat(r models.CrimeRecord, n int) []models.CrimeRecord {
	out := make([]models.CrimeRecord, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func concat(groups ...[]models.CrimeRecord) []models.CrimeRecord {
	var out []models.CrimeRecord
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// rateFixture has 10 records: 6 thefts (3 arrested), 3 batteries (none
// arrested) and 1 arrested homicide
func rateFixture() []models.CrimeRecord {
	return concat(
		repeat(crime(models.CrimeTypeTheft, "OVER $500", 1, true), 3),
		repeat(crime(models.CrimeTypeTheft, "RETAIL THEFT", 2, false), 3),
		repeat(crime("BATTERY", "SIMPLE", 3, false), 3),
		repeat(crime(models.CrimeTypeHomicide, "FIRST DEGREE MURDER", 4, true), 1),
	)
}
