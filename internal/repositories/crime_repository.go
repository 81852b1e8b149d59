package repositories

import (
	"fmt"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"

	"gorm.io/gorm"
)

const defaultBatchSize = 1000

// CrimeRepository reads and writes crime records in one configured table
type CrimeRepository struct {
	db    *gorm.DB
	table string
}

// NewCrimeRepository creates a repository bound to table, which may be schema qualified
func NewCrimeRepository(db *gorm.DB, table string) CrimeRepositoryInterface {
	return &CrimeRepository{
		db:    db,
		table: table,
	}
}

// Table returns the table the repository is bound to
func (r *CrimeRepository) Table() string {
	return r.table
}

// Exists reports whether the table is present
func (r *CrimeRepository) Exists() bool {
	return r.db.Migrator().HasTable(r.table)
}

// Count returns the number of rows in the table
func (r *CrimeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Table(r.table).Count(&count).Error; err != nil {
		return 0, r.queryError("count", err)
	}
	return count, nil
}

// CountByYear returns the row count per year, ordered by year
func (r *CrimeRepository) CountByYear() ([]models.YearCount, error) {
	var counts []models.YearCount
	err := r.db.Table(r.table).
		Select("year, count(1) as ct").
		Group("year").
		Order("year").
		Scan(&counts).Error
	if err != nil {
		return nil, r.queryError("count by year", err)
	}
	return counts, nil
}

// FindAll streams every row of the table into memory
func (r *CrimeRepository) FindAll() ([]models.CrimeRecord, error) {
	rows, err := r.db.Table(r.table).Rows()
	if err != nil {
		return nil, r.queryError("find all", err)
	}
	defer rows.Close()

	records := make([]models.CrimeRecord, 0, defaultBatchSize)
	for rows.Next() {
		var record models.CrimeRecord
		if err := r.db.ScanRows(rows, &record); err != nil {
			return nil, r.queryError("scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.queryError("find all", err)
	}

	return records, nil
}

func (r *CrimeRepository) queryError(op string, err error) error {
	return apperrors.New(apperrors.StoreQueryFailed,
		apperrors.WithDetails("table="+r.table, "op="+op),
		apperrors.WithCause(fmt.Errorf("failed to %s crime records: %w", op, err)))
}
