package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortRetries(t *testing.T, retries int) {
	t.Helper()

	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)

	assert.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
	assert.Equal(t, migrationsPath, runner.migrationsPath)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db).WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	shortRetries(t, 2)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db).WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	shortRetries(t, 2)
	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = NewMigrationRunner(db).WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:             db,
		migrationsPath: "/nonexistent/path/to/migrations",
	}

	assert.NoError(t, runner.RunMigrations())
}

func TestGetMigrationStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{
		db:             db,
		migrationsPath: "/nonexistent/migrations",
	}

	_, _, err = runner.GetMigrationStatus()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	err = RunMigrationsIfEnabled(db, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsIfEnabled_DatabaseNotReady(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	shortRetries(t, 2)
	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = RunMigrationsIfEnabled(db, true)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database readiness check failed")
}
