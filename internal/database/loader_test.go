package database

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	schemaSQL = `CREATE SCHEMA IF NOT EXISTS "chi_crime"`
	dropSQL   = `DROP TABLE "chi_crime"."crime_data"`
	createSQL = `CREATE TABLE "chi_crime"."crime_data"`
	copySQL   = `COPY "chi_crime"."crime_data"`
)

func artifactOf(t *testing.T, records ...models.CrimeRecord) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, models.WriteArtifact(&buf, records))
	return &buf
}

func loaderRecord(id int64, crimeType string, district float64, arrest bool) models.CrimeRecord {
	return models.CrimeRecord{
		ID:        id,
		CaseNum:   "HZ100",
		CrimeType: crimeType,
		Arrest:    arrest,
		District:  &district,
		Year:      2016,
	}
}

func expectCreate(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(schemaSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(createSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
}

func TestTableLoader_QualifiedName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loader := NewTableLoader(db, "chi_crime", "crime_data")

	assert.Equal(t, `"chi_crime"."crime_data"`, loader.QualifiedName())
}

func TestTableLoader_CreateStatement(t *testing.T) {
	loader := NewTableLoader(nil, "chi_crime", "crime_data")

	stmt := loader.createStatement()

	assert.True(t, strings.HasPrefix(stmt, createSQL))
	assert.Contains(t, stmt, "id int, case_num varchar(16), crime_date date")
	assert.Contains(t, stmt, "arrest boolean, domestic boolean, beat int, district float")
	assert.Contains(t, stmt, "year int, updated_on date, latitude float, longitude float)")
	assert.Len(t, columnTypes, len(models.Columns))
}

func TestTableLoader_Reload_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(dropSQL)).WillReturnError(&pq.Error{Code: undefinedTable})
	mock.ExpectRollback()
	expectCreate(mock)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(copySQL))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	artifact := artifactOf(t,
		loaderRecord(1, models.CrimeTypeTheft, 18, true),
		loaderRecord(2, models.CrimeTypeHomicide, 1, false),
	)

	n, err := NewTableLoader(db, "chi_crime", "crime_data").Reload(context.Background(), artifact)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoader_Reload_ExistingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(dropSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	expectCreate(mock)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(copySQL))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	artifact := artifactOf(t, loaderRecord(7, models.CrimeTypeTheft, 12, false))

	n, err := NewTableLoader(db, "chi_crime", "crime_data").Reload(context.Background(), artifact)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoader_Reload_DropFailureIsNotFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(dropSQL)).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()
	expectCreate(mock)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(copySQL))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := NewTableLoader(db, "chi_crime", "crime_data").Reload(context.Background(), artifactOf(t))

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoader_Reload_CreateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(dropSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(schemaSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(createSQL)).WillReturnError(errors.New("permission denied for schema chi_crime"))
	mock.ExpectRollback()

	_, err = NewTableLoader(db, "chi_crime", "crime_data").Reload(context.Background(), artifactOf(t))

	require.Error(t, err)
	code, ok := apperrors.CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.StoreLoadFailed, code)
	assert.Contains(t, err.Error(), "step=create")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoader_Reload_CustomSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE "analytics"."crime_data"`)).WillReturnError(&pq.Error{Code: undefinedTable})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA IF NOT EXISTS "analytics"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "analytics"."crime_data"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "analytics"."crime_data"`))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	artifact := artifactOf(t, loaderRecord(3, models.CrimeTypeTheft, 8, true))

	n, err := NewTableLoader(db, "analytics", "crime_data").Reload(context.Background(), artifact)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoader_Reload_CopyFailsRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(dropSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	expectCreate(mock)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(copySQL))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnError(errors.New("extra data after last expected column"))
	mock.ExpectRollback()

	artifact := artifactOf(t,
		loaderRecord(1, models.CrimeTypeTheft, 18, true),
		loaderRecord(2, models.CrimeTypeTheft, 18, false),
	)

	n, err := NewTableLoader(db, "chi_crime", "crime_data").Reload(context.Background(), artifact)

	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, apperrors.New(apperrors.StoreLoadFailed)))
	assert.Contains(t, err.Error(), "extra data after last expected column")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoader_Reload_EmptyArtifact(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(dropSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	expectCreate(mock)
	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta(copySQL))
	mock.ExpectRollback()

	_, err = NewTableLoader(db, "chi_crime", "crime_data").Reload(context.Background(), strings.NewReader(""))

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
