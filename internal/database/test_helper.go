package database

import (
	"testing"
	"time"

	"chicago-crime-analysis/internal/config"
	"chicago-crime-analysis/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestCrimeTable is the unqualified table name used by sqlite test stores
const TestCrimeTable = "crime_data"

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// every new connection to :memory: is a separate empty database
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Table:          TestCrimeTable,
			VerifyTable:    TestCrimeTable,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrateTable(TestCrimeTable); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

// InsertTestRecords stores records in the test crime table
func InsertTestRecords(t *testing.T, db *DB, records []models.CrimeRecord) {
	t.Helper()

	if len(records) == 0 {
		return
	}
	if err := db.Table(TestCrimeTable).CreateInBatches(records, 100).Error; err != nil {
		t.Fatalf("failed to insert test records: %v", err)
	}
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Exec("DELETE FROM " + TestCrimeTable).Error; err != nil {
		t.Logf("failed to cleanup table %s: %v", TestCrimeTable, err)
	}
}

var fakeCrimeTypes = []string{
	models.CrimeTypeTheft, models.CrimeTypeHomicide, "BATTERY", "ASSAULT",
	"NARCOTICS", "BURGLARY", "ROBBERY", "CRIMINAL DAMAGE",
}

// NewFakeCrimeRecord returns a plausible record with the given id and year.
// District is drawn from the real police districts, never the excluded one.
func NewFakeCrimeRecord(id int64, year int) models.CrimeRecord {
	district := float64(gofakeit.Number(1, 25))
	ward := float64(gofakeit.Number(1, 50))
	area := float64(gofakeit.Number(1, 77))
	beat := int64(gofakeit.Number(111, 2535))
	lat := gofakeit.Float64Range(41.64, 42.02)
	lon := gofakeit.Float64Range(-87.94, -87.52)
	date := time.Date(year, time.Month(gofakeit.Number(1, 12)), gofakeit.Number(1, 28), 0, 0, 0, 0, time.UTC)
	updated := date.AddDate(0, 1, 0)

	return models.CrimeRecord{
		ID:                  id,
		CaseNum:             "H" + gofakeit.LetterN(1) + gofakeit.DigitN(6),
		CrimeDate:           &date,
		Block:               gofakeit.Street(),
		IUCR:                gofakeit.DigitN(4),
		CrimeType:           gofakeit.RandomString(fakeCrimeTypes),
		Description:         gofakeit.RandomString([]string{"OVER $500", "$500 AND UNDER", "RETAIL THEFT", "SIMPLE", "FIRST DEGREE MURDER"}),
		LocationDescription: gofakeit.RandomString([]string{"STREET", "RESIDENCE", "APARTMENT", "SIDEWALK"}),
		Arrest:              gofakeit.Bool(),
		Domestic:            gofakeit.Bool(),
		Beat:                &beat,
		District:            &district,
		Ward:                &ward,
		CommunityArea:       &area,
		FBICode:             gofakeit.RandomString([]string{"06", "01A", "08B", "18"}),
		Year:                year,
		UpdatedOn:           &updated,
		Latitude:            &lat,
		Longitude:           &lon,
	}
}
