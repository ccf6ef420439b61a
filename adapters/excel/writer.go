package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"distviz/domain/dist"
	"distviz/internal/errors"
)

// Format selects the export encoding
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Sheet names of the workbook export
const (
	CurveSheet      = "Curve"
	StatisticsSheet = "Statistics"
	ParametersSheet = "Parameters"
)

// ParseFormat accepts "xlsx" or "csv", case-insensitively. An empty string selects xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unsupported export format: %s", s))
	}
}

// FormatFromPath picks the format from a file extension, defaulting to xlsx
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return FormatCSV
	}
	return FormatXLSX
}

// ContentType is the MIME type served for the format
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Series is a named curve placed next to the primary one
type Series struct {
	Name  string
	Curve *dist.Curve
}

// Export is the data written for one rendered distribution
type Export struct {
	Distribution string
	Params       dist.Params
	Curve        *dist.Curve
	Statistics   dist.Statistics
	Comparison   *Series // Optional
}

// DataWriter writes curve exports as Excel workbooks or CSV files
type DataWriter struct {
	format Format
}

// NewDataWriter creates a writer for the given format
func NewDataWriter(format Format) *DataWriter {
	return &DataWriter{format: format}
}

// Format reports the writer's encoding
func (w *DataWriter) Format() Format {
	return w.format
}

// Write encodes the export to out
func (w *DataWriter) Write(out io.Writer, e Export) error {
	if e.Curve == nil {
		return errors.InvalidInput("export needs a curve")
	}
	switch w.format {
	case FormatCSV:
		return writeCSV(out, e)
	case FormatXLSX:
		return writeWorkbook(out, e)
	default:
		return fmt.Errorf("unsupported file type: %s", w.format)
	}
}

// writeCSV writes x, pdf_pmf and cdf columns; the cdf is left empty when absent
func writeCSV(out io.Writer, e Export) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"x", "pdf_pmf", "cdf"}); err != nil {
		return err
	}
	for i := range e.Curve.X {
		cdf := ""
		if e.Curve.CDF != nil {
			cdf = formatFloat(e.Curve.CDF[i])
		}
		if err := cw.Write([]string{formatFloat(e.Curve.X[i]), formatFloat(e.Curve.Y[i]), cdf}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeWorkbook writes the Curve, Statistics and Parameters sheets
func writeWorkbook(out io.Writer, e Export) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[DataWriter] failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", CurveSheet); err != nil {
		return fmt.Errorf("failed to name curve sheet: %w", err)
	}
	if err := writeCurveSheet(f, e); err != nil {
		return err
	}
	if err := writeStatisticsSheet(f, e.Statistics); err != nil {
		return err
	}
	if err := writeParametersSheet(f, e.Distribution, e.Params); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeCurveSheet(f *excelize.File, e Export) error {
	header := []interface{}{"x", "pdf_pmf", "cdf"}
	cmp := e.Comparison
	if cmp != nil && cmp.Curve != nil {
		header = append(header, cmp.Name+" pdf_pmf", cmp.Name+" cdf")
	} else {
		cmp = nil
	}
	if err := setRow(f, CurveSheet, 1, header); err != nil {
		return err
	}

	for i := range e.Curve.X {
		row := []interface{}{e.Curve.X[i], e.Curve.Y[i], at(e.Curve.CDF, i)}
		if cmp != nil {
			row = append(row, at(cmp.Curve.Y, i), at(cmp.Curve.CDF, i))
		}
		if err := setRow(f, CurveSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStatisticsSheet(f *excelize.File, stats dist.Statistics) error {
	if _, err := f.NewSheet(StatisticsSheet); err != nil {
		return fmt.Errorf("failed to create statistics sheet: %w", err)
	}
	if err := setRow(f, StatisticsSheet, 1, []interface{}{"statistic", "value"}); err != nil {
		return err
	}
	for i, st := range stats {
		var value interface{} = st.Value
		if !st.Defined() {
			value = string(st.Sentinel)
		}
		if err := setRow(f, StatisticsSheet, i+2, []interface{}{st.Name, value}); err != nil {
			return err
		}
	}
	return nil
}

func writeParametersSheet(f *excelize.File, distribution string, params dist.Params) error {
	if _, err := f.NewSheet(ParametersSheet); err != nil {
		return fmt.Errorf("failed to create parameters sheet: %w", err)
	}
	if err := setRow(f, ParametersSheet, 1, []interface{}{"distribution", distribution}); err != nil {
		return err
	}
	for i, name := range params.Keys() {
		if err := setRow(f, ParametersSheet, i+2, []interface{}{name, params[name]}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// at returns values[i], or nil for an absent series so the cell stays empty
func at(values []float64, i int) interface{} {
	if values == nil || i >= len(values) {
		return nil
	}
	return values[i]
}
