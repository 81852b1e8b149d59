package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"

	"github.com/lib/pq"
)

// undefinedTable is the postgres SQLSTATE for a missing relation
const undefinedTable = "42P01"

// columnTypes mirrors models.Columns
var columnTypes = []string{
	"int", "varchar(16)", "date", "varchar(128)", "varchar(8)", "varchar(128)",
	"varchar(128)", "varchar(128)", "boolean", "boolean",
	"int", "float", "float", "float", "varchar(8)",
	"float", "float", "int", "date", "float", "float",
}

// TableLoader drops, recreates and bulk-loads the crime table
type TableLoader struct {
	db     *sql.DB
	schema string
	table  string
}

func NewTableLoader(db *sql.DB, schema, table string) *TableLoader {
	return &TableLoader{
		db:     db,
		schema: schema,
		table:  table,
	}
}

// QualifiedName returns the quoted schema.table
func (l *TableLoader) QualifiedName() string {
	return pq.QuoteIdentifier(l.schema) + "." + pq.QuoteIdentifier(l.table)
}

// Reload replaces the table contents with the rows of a tab-delimited artifact
// and returns the number of rows copied. A missing table is not an error.
func (l *TableLoader) Reload(ctx context.Context, artifact io.Reader) (int, error) {
	if err := l.dropTable(ctx); err != nil {
		return 0, err
	}

	if err := l.createTable(ctx); err != nil {
		return 0, apperrors.New(apperrors.StoreLoadFailed,
			apperrors.WithDetails("table="+l.QualifiedName(), "step=create"), apperrors.WithCause(err))
	}

	n, err := l.copyRows(ctx, artifact)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return 0, err
		}
		return 0, apperrors.New(apperrors.StoreLoadFailed,
			apperrors.WithDetails("table="+l.QualifiedName(), "step=copy"), apperrors.WithCause(err))
	}

	slog.Info("table loaded", "table", l.QualifiedName(), "rows", n)
	return n, nil
}

func (l *TableLoader) dropTable(ctx context.Context) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.New(apperrors.StoreConnectionFailed, apperrors.WithCause(err))
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE "+l.QualifiedName()); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			slog.Info("table not found", "table", l.QualifiedName())
		} else {
			slog.Warn("failed to drop table", "table", l.QualifiedName(), "error", err)
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			return apperrors.New(apperrors.StoreConnectionFailed, apperrors.WithCause(rbErr))
		}
		return nil
	}

	if err := tx.Commit(); err != nil {
		return apperrors.New(apperrors.StoreLoadFailed,
			apperrors.WithDetails("table="+l.QualifiedName(), "step=drop"), apperrors.WithCause(err))
	}
	return nil
}

func (l *TableLoader) createTable(ctx context.Context) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// the migrations only create the default schema, DB_SCHEMA may name another
	for _, stmt := range []string{l.schemaStatement(), l.createStatement()} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (l *TableLoader) schemaStatement() string {
	return "CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(l.schema)
}

func (l *TableLoader) createStatement() string {
	defs := make([]string, len(models.Columns))
	for i, col := range models.Columns {
		defs[i] = col + " " + columnTypes[i]
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", l.QualifiedName(), strings.Join(defs, ", "))
}

func (l *TableLoader) copyRows(ctx context.Context, artifact io.Reader) (int, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	n, err := l.copyInTx(ctx, tx, artifact)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (l *TableLoader) copyInTx(ctx context.Context, tx *sql.Tx, artifact io.Reader) (int, error) {
	stmt, err := tx.PrepareContext(ctx, pq.CopyInSchema(l.schema, l.table, models.Columns...))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	reader := models.NewArtifactReader(artifact)
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, apperrors.NewInvalidInput(apperrors.InputMalformedRow, "artifact has no header row")
		}
		return 0, err
	}

	n := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, apperrors.New(apperrors.InputMalformedRow, apperrors.WithCause(err))
		}

		record, err := models.ParseCrimeRow(row)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return 0, apperrors.New(apperrors.InputInvalidField,
				apperrors.WithDetails(fmt.Sprintf("line=%d", line)), apperrors.WithCause(err))
		}

		if _, err := stmt.ExecContext(ctx, record.CopyValues()...); err != nil {
			return 0, err
		}
		n++
	}

	// an argument-less exec flushes the buffered COPY data
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	return n, nil
}
