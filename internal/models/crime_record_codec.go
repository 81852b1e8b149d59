package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing incident and update dates
var dateLayouts = []string{
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04",
	"01/02/2006",
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// FieldError identifies a column that could not be parsed
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %s: cannot parse %q: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseCrimeRow converts a row in Columns order into a CrimeRecord
func ParseCrimeRow(fields []string) (CrimeRecord, error) {
	var r CrimeRecord
	if len(fields) != len(Columns) {
		return r, fmt.Errorf("expected %d fields, got %d", len(Columns), len(fields))
	}

	p := rowParser{fields: fields}
	r.ID = p.int64At(0)
	r.CaseNum = p.stringAt(1)
	r.CrimeDate = p.dateAt(2)
	r.Block = p.stringAt(3)
	r.IUCR = p.stringAt(4)
	r.CrimeType = p.stringAt(5)
	r.Description = p.stringAt(6)
	r.LocationDescription = p.stringAt(7)
	r.Arrest = p.boolAt(8)
	r.Domestic = p.boolAt(9)
	r.Beat = p.optionalInt64At(10)
	r.District = p.optionalFloatAt(11)
	r.Ward = p.optionalFloatAt(12)
	r.CommunityArea = p.optionalFloatAt(13)
	r.FBICode = p.stringAt(14)
	r.XCord = p.optionalFloatAt(15)
	r.YCord = p.optionalFloatAt(16)
	r.Year = int(p.int64At(17))
	r.UpdatedOn = p.dateAt(18)
	r.Latitude = p.optionalFloatAt(19)
	r.Longitude = p.optionalFloatAt(20)

	if p.err != nil {
		return CrimeRecord{}, p.err
	}
	return r, nil
}

// Row renders the record in Columns order, the inverse of ParseCrimeRow
func (r *CrimeRecord) Row() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.CaseNum,
		formatDate(r.CrimeDate),
		r.Block,
		r.IUCR,
		r.CrimeType,
		r.Description,
		r.LocationDescription,
		strconv.FormatBool(r.Arrest),
		strconv.FormatBool(r.Domestic),
		formatOptionalInt(r.Beat),
		formatOptionalFloat(r.District),
		formatOptionalFloat(r.Ward),
		formatOptionalFloat(r.CommunityArea),
		r.FBICode,
		formatOptionalFloat(r.XCord),
		formatOptionalFloat(r.YCord),
		strconv.Itoa(r.Year),
		formatDate(r.UpdatedOn),
		formatOptionalFloat(r.Latitude),
		formatOptionalFloat(r.Longitude),
	}
}

// CopyValues returns the record as driver values in Columns order for bulk copy
func (r *CrimeRecord) CopyValues() []interface{} {
	return []interface{}{
		r.ID, r.CaseNum, dateValue(r.CrimeDate), r.Block, r.IUCR, r.CrimeType,
		r.Description, r.LocationDescription, r.Arrest, r.Domestic,
		int64Value(r.Beat), floatValue(r.District), floatValue(r.Ward), floatValue(r.CommunityArea), r.FBICode,
		floatValue(r.XCord), floatValue(r.YCord), r.Year, dateValue(r.UpdatedOn), floatValue(r.Latitude), floatValue(r.Longitude),
	}
}

// ParseBool accepts the spellings found in the source exports
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}

// ParseDate tries each known layout and truncates to the calendar day
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format")
}

type rowParser struct {
	fields []string
	err    error
}

func (p *rowParser) fail(i int, err error) {
	if p.err == nil {
		p.err = &FieldError{Column: Columns[i], Value: p.fields[i], Err: err}
	}
}

func (p *rowParser) stringAt(i int) string {
	return strings.TrimSpace(p.fields[i])
}

func (p *rowParser) int64At(i int) int64 {
	v := p.optionalInt64At(i)
	if v == nil {
		return 0
	}
	return *v
}

// optionalInt64At also accepts "12.0", which pandas writes for integer columns with nulls
func (p *rowParser) optionalInt64At(i int) *int64 {
	s := p.stringAt(i)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		p.fail(i, fmt.Errorf("not an integer"))
		return nil
	}
	n := int64(f)
	return &n
}

func (p *rowParser) optionalFloatAt(i int) *float64 {
	s := p.stringAt(i)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(i, err)
		return nil
	}
	return &f
}

func (p *rowParser) boolAt(i int) bool {
	b, err := ParseBool(p.fields[i])
	if err != nil {
		p.fail(i, err)
	}
	return b
}

func (p *rowParser) dateAt(i int) *time.Time {
	s := p.stringAt(i)
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		p.fail(i, err)
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func formatOptionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func dateValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(DateLayout)
}

func int64Value(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func floatValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
