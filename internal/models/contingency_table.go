package models

const (
	DecisionReject       = "reject"
	DecisionFailToReject = "fail_to_reject"
)

// ContingencyTable cross-classifies observed counts. Rows are the categories
// under test, columns are the outcome classes.
type ContingencyTable struct {
	RowLabels    []string    `json:"row_labels"`
	ColumnLabels []string    `json:"column_labels"`
	Observed     [][]float64 `json:"observed"`
	RowTotals    []float64   `json:"row_totals"`
	ColumnTotals []float64   `json:"column_totals"`
	GrandTotal   float64     `json:"grand_total"`
}

// Rows returns the number of row categories
func (t *ContingencyTable) Rows() int {
	return len(t.Observed)
}

// Columns returns the number of outcome classes
func (t *ContingencyTable) Columns() int {
	if len(t.Observed) == 0 {
		return 0
	}
	return len(t.Observed[0])
}

// IndependenceResult is the outcome of a chi-squared test of independence
type IndependenceResult struct {
	Expected         [][]float64 `json:"expected"`
	Statistic        float64     `json:"statistic"`
	DegreesOfFreedom int         `json:"degrees_of_freedom"`
	CriticalValue    float64     `json:"critical_value"`
	PValue           float64     `json:"p_value"`
	Decision         string      `json:"decision"`
}

// RejectsIndependence reports whether the statistic exceeded the critical value
func (r *IndependenceResult) RejectsIndependence() bool {
	return r.Decision == DecisionReject
}
