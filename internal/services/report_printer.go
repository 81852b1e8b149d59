package services

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"chicago-crime-analysis/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

const (
	sharePlaces     = 4
	ratePlaces      = 3
	statisticPlaces = 4
)

type reportPrinter struct{}

func NewReportPrinter() ReportPrinterInterface {
	return &reportPrinter{}
}

// PrintAnalysis writes the analysis rows as a table under a title line
func (p *reportPrinter) PrintAnalysis(w io.Writer, result *models.AnalysisResult) {
	if result == nil {
		return
	}

	color.New(color.FgYellow).Fprintf(w, "\n%s\n", result.Chart.Title)

	table := tablewriter.NewWriter(w)
	switch {
	case result.Rates != nil:
		table.SetHeader([]string{"Crime Type", "Crimes", "Arrests", "Crime Share", "Arrest Share", "Arrest Rate"})
		for _, r := range result.Rates {
			table.Append([]string{
				r.Category,
				strconv.FormatInt(r.CrimeCount, 10),
				strconv.FormatInt(r.ArrestCount, 10),
				fixed(r.CrimeShare, sharePlaces),
				fixed(r.ArrestShare, sharePlaces),
				fixed(r.Rate, ratePlaces),
			})
		}
	case result.Pairs != nil:
		table.SetHeader([]string{"Group", "Description", "Crimes", "Arrests"})
		for _, pc := range result.Pairs {
			table.Append([]string{
				pc.Primary,
				pc.Secondary,
				strconv.FormatInt(pc.CrimeCount, 10),
				strconv.FormatInt(pc.ArrestCount, 10),
			})
		}
	default:
		table.SetHeader([]string{result.Chart.XLabel, "Count"})
		for _, c := range result.Counts {
			table.Append([]string{c.Category, strconv.FormatInt(c.Count, 10)})
		}
		table.SetFooter([]string{"Total", strconv.FormatInt(models.SumCounts(result.Counts), 10)})
	}
	table.Render()
}

// PrintIndependence writes observed and expected counts and the decision line
func (p *reportPrinter) PrintIndependence(w io.Writer, ct *models.ContingencyTable, result *models.IndependenceResult) {
	if ct == nil || result == nil {
		return
	}

	color.New(color.FgYellow).Fprintf(w, "\nChi-squared test of independence\n")

	header := []string{""}
	for j := 0; j < ct.Columns(); j++ {
		c := label(ct.ColumnLabels, j)
		header = append(header, c, "expected "+c)
	}
	header = append(header, "total")

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for i := range ct.Observed {
		row := []string{label(ct.RowLabels, i)}
		for j := range ct.Observed[i] {
			row = append(row, fixed(ct.Observed[i][j], 0), fixed(result.Expected[i][j], 2))
		}
		row = append(row, fixed(ct.RowTotals[i], 0))
		table.Append(row)
	}

	footer := []string{"total"}
	for j := range ct.ColumnTotals {
		footer = append(footer, fixed(ct.ColumnTotals[j], 0), "")
	}
	footer = append(footer, fixed(ct.GrandTotal, 0))
	table.SetFooter(footer)
	table.Render()

	fmt.Fprintf(w, "statistic=%s df=%d critical=%s p=%s\n",
		fixed(result.Statistic, statisticPlaces),
		result.DegreesOfFreedom,
		fixed(result.CriticalValue, statisticPlaces),
		strconv.FormatFloat(result.PValue, 'g', 4, 64))

	if result.RejectsIndependence() {
		color.New(color.FgRed, color.Bold).Fprintln(w, "We reject H0: district and theft arrests are not independent")
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintln(w, "We fail to reject H0: district and theft arrests are independent")
}

// PrintVerification writes the artifact/table comparison
func (p *reportPrinter) PrintVerification(w io.Writer, report *VerificationReport) {
	if report == nil {
		return
	}

	color.New(color.FgYellow).Fprintf(w, "\nVerification of %s\n", report.Table)

	inTable := make(map[int]int64, len(report.TableYears))
	for _, yc := range report.TableYears {
		inTable[yc.Year] = yc.Count
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Year", "Artifact", "Table"})
	for _, yc := range report.ArtifactYears {
		table.Append([]string{
			strconv.Itoa(yc.Year),
			strconv.FormatInt(yc.Count, 10),
			strconv.FormatInt(inTable[yc.Year], 10),
		})
	}
	table.SetFooter([]string{"Total", strconv.FormatInt(report.ArtifactRows, 10), strconv.FormatInt(report.TableRows, 10)})
	table.Render()

	if report.OK() {
		color.New(color.FgGreen).Fprintln(w, "artifact and table match")
		return
	}
	color.New(color.FgRed).Fprintln(w, "artifact and table differ")
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
