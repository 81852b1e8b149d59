package repositories

import (
	"chicago-crime-analysis/internal/models"
)

// CrimeRepositoryInterface defines the contract for crime table operations
type CrimeRepositoryInterface interface {
	Table() string
	Exists() bool
	Count() (int64, error)
	CountByYear() ([]models.YearCount, error)
	FindAll() ([]models.CrimeRecord, error)
}
