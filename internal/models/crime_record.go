package models

import (
	"time"
)

const (
	CrimeTypeTheft    = "THEFT"
	CrimeTypeHomicide = "HOMICIDE"

	// DataEntryErrorDistrict is recorded for some district 13 incidents and is
	// not a real police district
	DataEntryErrorDistrict = 31

	DateLayout = "2006-01-02"
)

// Columns is the fixed column order of the merged dataset, the artifact and the table
var Columns = []string{
	"id", "case_num", "crime_date", "block", "iucr", "crime_type",
	"description", "location_description", "arrest", "domestic",
	"beat", "district", "ward", "community_area", "fbi_code",
	"x_cord", "y_cord", "year", "updated_on", "latitude", "longitude",
}

// CrimeRecord is one reported incident. Records are read-only after ingest.
type CrimeRecord struct {
	ID                  int64      `gorm:"column:id;type:int;primaryKey;autoIncrement:false" json:"id" validate:"gte=0"`
	CaseNum             string     `gorm:"column:case_num;type:varchar(16)" json:"case_num" validate:"max=16"`
	CrimeDate           *time.Time `gorm:"column:crime_date;type:date" json:"crime_date"`
	Block               string     `gorm:"column:block;type:varchar(128)" json:"block" validate:"max=128"`
	IUCR                string     `gorm:"column:iucr;type:varchar(8)" json:"iucr" validate:"omitempty,iucr"`
	CrimeType           string     `gorm:"column:crime_type;type:varchar(128);index" json:"crime_type" validate:"max=128"`
	Description         string     `gorm:"column:description;type:varchar(128)" json:"description" validate:"max=128"`
	LocationDescription string     `gorm:"column:location_description;type:varchar(128)" json:"location_description" validate:"max=128"`
	Arrest              bool       `gorm:"column:arrest" json:"arrest"`
	Domestic            bool       `gorm:"column:domestic" json:"domestic"`
	Beat                *int64     `gorm:"column:beat;type:int" json:"beat"`
	District            *float64   `gorm:"column:district;type:float" json:"district"`
	Ward                *float64   `gorm:"column:ward;type:float" json:"ward"`
	CommunityArea       *float64   `gorm:"column:community_area;type:float" json:"community_area"`
	FBICode             string     `gorm:"column:fbi_code;type:varchar(8)" json:"fbi_code" validate:"max=8"`
	XCord               *float64   `gorm:"column:x_cord;type:float" json:"x_cord"`
	YCord               *float64   `gorm:"column:y_cord;type:float" json:"y_cord"`
	Year                int        `gorm:"column:year;type:int;index" json:"year" validate:"gte=0"`
	UpdatedOn           *time.Time `gorm:"column:updated_on;type:date" json:"updated_on"`
	Latitude            *float64   `gorm:"column:latitude;type:float" json:"latitude"`
	Longitude           *float64   `gorm:"column:longitude;type:float" json:"longitude"`
}

// HasDistrict reports whether the district is present and equals d
func (r *CrimeRecord) HasDistrict(d int) bool {
	return r.District != nil && *r.District == float64(d)
}

// DistrictLabel renders the district as an integer label, or "" when null
func (r *CrimeRecord) DistrictLabel() string {
	if r.District == nil {
		return ""
	}
	return formatWhole(*r.District)
}

// IsTheft reports whether the record's crime type is THEFT
func (r *CrimeRecord) IsTheft() bool {
	return r.CrimeType == CrimeTypeTheft
}

// IsHomicide reports whether the record's crime type is HOMICIDE
func (r *CrimeRecord) IsHomicide() bool {
	return r.CrimeType == CrimeTypeHomicide
}

// ExcludeDistrict returns the records whose district is not d. Records with a
// null district are kept.
func ExcludeDistrict(records []CrimeRecord, d int) []CrimeRecord {
	kept := make([]CrimeRecord, 0, len(records))
	for i := range records {
		if records[i].HasDistrict(d) {
			continue
		}
		kept = append(kept, records[i])
	}
	return kept
}
