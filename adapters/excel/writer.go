package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"simlm/domain/frame"
)

// DatasetWriter exports simulated frames to Excel or CSV files
type DatasetWriter struct{}

// NewDatasetWriter creates a new dataset writer
func NewDatasetWriter() *DatasetWriter {
	return &DatasetWriter{}
}

// Write exports the frame to path. The extension picks the format:
// .csv writes comma-separated text, anything else writes an .xlsx workbook.
func (w *DatasetWriter) Write(f *frame.Frame, path string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return w.writeCSV(f, path)
	}
	return w.writeXLSX(f, path)
}

func (w *DatasetWriter) writeCSV(f *frame.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = string(c.Key)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(f.Columns))
	for row := 0; row < f.N; row++ {
		for i, c := range f.Columns {
			record[i] = cellString(c, row)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *DatasetWriter) writeXLSX(f *frame.Frame, path string) error {
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)

	for i, c := range f.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := wb.SetCellValue(sheet, cell, string(c.Key)); err != nil {
			return err
		}
	}
	for row := 0; row < f.N; row++ {
		for i, c := range f.Columns {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return err
			}
			var value interface{}
			if c.Kind == frame.ColLabel {
				value = c.Labels[row]
			} else {
				value = c.Numeric[row]
			}
			if err := wb.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func cellString(c frame.Column, row int) string {
	if c.Kind == frame.ColLabel {
		return c.Labels[row]
	}
	return strconv.FormatFloat(c.Numeric[row], 'g', -1, 64)
}
