package models

const (
	SeriesNotArrested = "Not Arrested"
	SeriesArrested    = "Arrested"
)

// ChartSeries is one bar series; Values align with ChartSpec.Labels
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartSpec describes a bar chart. Series are drawn overlaid in order, so the
// total series goes first and the subset series (arrests) on top of it.
type ChartSpec struct {
	Title       string        `json:"title"`
	XLabel      string        `json:"x_label"`
	YLabel      string        `json:"y_label"`
	FileName    string        `json:"file_name"`
	Labels      []string      `json:"labels"`
	Series      []ChartSeries `json:"series"`
	RotateTicks bool          `json:"rotate_ticks"`
}

// HasLegend reports whether more than one series needs distinguishing
func (c *ChartSpec) HasLegend() bool {
	return len(c.Series) > 1
}
