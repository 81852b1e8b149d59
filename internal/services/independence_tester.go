package services

import (
	"fmt"
	"math"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	ColumnArrest = "arrest"
	ColumnTheft  = "theft"

	// totalsTolerance is the relative slack allowed when comparing caller
	// supplied totals with the sums of the observed matrix
	totalsTolerance = 1e-9
)

type independenceTester struct{}

// NewIndependenceTester creates a chi-squared test of independence over R×C tables
func NewIndependenceTester() IndependenceTesterInterface {
	return &independenceTester{}
}

// NewContingencyTable builds a table whose totals are derived from observed
func NewContingencyTable(rowLabels, columnLabels []string, observed [][]float64) (*models.ContingencyTable, error) {
	if err := validateShape(rowLabels, columnLabels, observed); err != nil {
		return nil, err
	}

	rowTotals, columnTotals, grand := marginals(observed)
	return &models.ContingencyTable{
		RowLabels:    rowLabels,
		ColumnLabels: columnLabels,
		Observed:     observed,
		RowTotals:    rowTotals,
		ColumnTotals: columnTotals,
		GrandTotal:   grand,
	}, nil
}

// NewContingencyTableWithTotals builds a table from precomputed totals, failing
// when they disagree with the observed matrix
func NewContingencyTableWithTotals(rowLabels, columnLabels []string, observed [][]float64, rowTotals, columnTotals []float64, grandTotal float64) (*models.ContingencyTable, error) {
	table := &models.ContingencyTable{
		RowLabels:    rowLabels,
		ColumnLabels: columnLabels,
		Observed:     observed,
		RowTotals:    rowTotals,
		ColumnTotals: columnTotals,
		GrandTotal:   grandTotal,
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Test computes expected counts under independence and the chi-squared
// statistic, and rejects independence when the statistic exceeds criticalValue
func (t *independenceTester) Test(table *models.ContingencyTable, criticalValue float64) (*models.IndependenceResult, error) {
	if table == nil {
		return nil, apperrors.NewInvalidInput(apperrors.InputGeneral, "contingency table is nil")
	}
	if criticalValue <= 0 || math.IsNaN(criticalValue) || math.IsInf(criticalValue, 0) {
		return nil, apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "critical value must be a positive number, got %v", criticalValue)
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}

	rows, cols := table.Rows(), table.Columns()
	expected := make([][]float64, rows)
	statistic := 0.0

	for i := 0; i < rows; i++ {
		expected[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			e := table.RowTotals[i] * table.ColumnTotals[j] / table.GrandTotal
			if e == 0 {
				return nil, apperrors.NewInvalidInput(apperrors.InputDegenerateTable,
					"expected count for %s/%s is zero", label(table.RowLabels, i), label(table.ColumnLabels, j))
			}
			expected[i][j] = e

			diff := table.Observed[i][j] - e
			statistic += diff * diff / e
		}
	}

	df := (rows - 1) * (cols - 1)
	result := &models.IndependenceResult{
		Expected:         expected,
		Statistic:        statistic,
		DegreesOfFreedom: df,
		CriticalValue:    criticalValue,
		PValue:           distuv.ChiSquared{K: float64(df)}.Survival(statistic),
		Decision:         models.DecisionFailToReject,
	}
	if statistic > criticalValue {
		result.Decision = models.DecisionReject
	}

	return result, nil
}

// CriticalValue returns the upper alpha quantile of the chi-squared
// distribution with df degrees of freedom
func (t *independenceTester) CriticalValue(alpha float64, df int) (float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "significance level must be in (0, 1), got %v", alpha)
	}
	if df < 1 {
		return 0, apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "degrees of freedom must be positive, got %d", df)
	}
	return distuv.ChiSquared{K: float64(df)}.Quantile(1 - alpha), nil
}

// BuildDistrictTheftArrestTable counts theft arrests and thefts for each
// district, one row per district in the given order. Records filed under
// excludedDistrict never count, and it cannot be requested as a row.
func BuildDistrictTheftArrestTable(records []models.CrimeRecord, districts []int, excludedDistrict int) (*models.ContingencyTable, error) {
	index := make(map[int]int, len(districts))
	rowLabels := make([]string, len(districts))
	observed := make([][]float64, len(districts))
	for i, d := range districts {
		if d == excludedDistrict {
			return nil, apperrors.NewInvalidInput(apperrors.InputInvalidParameter,
				"district %d is excluded from analysis and cannot be tested", d)
		}
		index[d] = i
		rowLabels[i] = fmt.Sprintf("District %d", d)
		observed[i] = make([]float64, 2)
	}

	for i := range records {
		r := &records[i]
		if !r.IsTheft() || r.District == nil || r.HasDistrict(excludedDistrict) {
			continue
		}
		row, ok := index[int(*r.District)]
		if !ok || !r.HasDistrict(int(*r.District)) {
			continue
		}
		if r.Arrest {
			observed[row][0]++
		}
		observed[row][1]++
	}

	return NewContingencyTable(rowLabels, []string{ColumnArrest, ColumnTheft}, observed)
}

func validateShape(rowLabels, columnLabels []string, observed [][]float64) error {
	rows := len(observed)
	if rows < 2 {
		return apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "need at least 2 rows, got %d", rows)
	}

	cols := len(observed[0])
	if cols < 2 {
		return apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "need at least 2 columns, got %d", cols)
	}

	for i, row := range observed {
		if len(row) != cols {
			return apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "row %d has %d columns, expected %d", i, len(row), cols)
		}
		for j, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "observed[%d][%d] must be a non-negative count, got %v", i, j, v)
			}
		}
	}

	if len(rowLabels) != 0 && len(rowLabels) != rows {
		return apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "%d row labels for %d rows", len(rowLabels), rows)
	}
	if len(columnLabels) != 0 && len(columnLabels) != cols {
		return apperrors.NewInvalidInput(apperrors.InputInvalidParameter, "%d column labels for %d columns", len(columnLabels), cols)
	}

	return nil
}

func validateTable(table *models.ContingencyTable) error {
	if err := validateShape(table.RowLabels, table.ColumnLabels, table.Observed); err != nil {
		return err
	}

	rows, cols := table.Rows(), table.Columns()
	if len(table.RowTotals) != rows || len(table.ColumnTotals) != cols {
		return apperrors.NewInvalidInput(apperrors.InputInconsistentTotals,
			"got %d row totals and %d column totals for a %dx%d table", len(table.RowTotals), len(table.ColumnTotals), rows, cols)
	}

	rowTotals, columnTotals, grand := marginals(table.Observed)
	for i := range rowTotals {
		if !closeTo(table.RowTotals[i], rowTotals[i]) {
			return apperrors.NewInvalidInput(apperrors.InputInconsistentTotals,
				"row total for %s is %v but observed counts sum to %v", label(table.RowLabels, i), table.RowTotals[i], rowTotals[i])
		}
	}
	for j := range columnTotals {
		if !closeTo(table.ColumnTotals[j], columnTotals[j]) {
			return apperrors.NewInvalidInput(apperrors.InputInconsistentTotals,
				"column total for %s is %v but observed counts sum to %v", label(table.ColumnLabels, j), table.ColumnTotals[j], columnTotals[j])
		}
	}
	if !closeTo(table.GrandTotal, grand) {
		return apperrors.NewInvalidInput(apperrors.InputInconsistentTotals,
			"grand total is %v but observed counts sum to %v", table.GrandTotal, grand)
	}
	if grand == 0 {
		return apperrors.NewInvalidInput(apperrors.InputDegenerateTable, "table has no observations")
	}

	return nil
}

func marginals(observed [][]float64) (rowTotals, columnTotals []float64, grand float64) {
	rowTotals = make([]float64, len(observed))
	if len(observed) > 0 {
		columnTotals = make([]float64, len(observed[0]))
	}
	for i, row := range observed {
		for j, v := range row {
			rowTotals[i] += v
			columnTotals[j] += v
			grand += v
		}
	}
	return rowTotals, columnTotals, grand
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) <= totalsTolerance*math.Max(1, math.Abs(want))
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("#%d", i)
}
