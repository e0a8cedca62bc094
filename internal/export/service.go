// Package export renders parsed documents to the output formats the batch
// driver writes: a JSON array and an XLSX summary workbook.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/weighlog/weighbridge-parser/constants"
	"github.com/weighlog/weighbridge-parser/internal/entity"
)

// Service produces export payloads from parsed documents.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// MarshalJSON renders the documents as an indented JSON array. Weights stay
// exact decimal strings; dates are RFC 3339.
func (s *Service) MarshalJSON(docs []entity.ParsedDocument, indent string) ([]byte, error) {
	out, err := json.MarshalIndent(docs, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}
	s.logger.Info("export.json", "documents", len(docs), "bytes", len(out))
	return out, nil
}

// DocumentsXLSX returns an XLSX workbook (as bytes) with one row per parsed
// document, suitable for human review of flagged records.
func (s *Service) DocumentsXLSX(docs []entity.ParsedDocument) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Source File",
		"Status",
		"Measurement Date",
		"Vehicle Number",
		"Gross (kg)",
		"Tare (kg)",
		"Net (kg)",
		"Weight Consistent",
		"Completeness",
		"Errors",
		"Warnings",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, doc := range docs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, doc.SourcePath)
		write(2, string(constants.StatusFor(doc.Validation.IsValid, len(doc.Validation.Warnings))))
		if doc.Record.MeasurementDate != nil {
			write(3, doc.Record.MeasurementDate.Format("2006-01-02"))
		}
		if doc.Record.VehicleNumber != nil {
			write(4, *doc.Record.VehicleNumber)
		}
		write(5, weightCell(doc.Record.GrossWeightKG))
		write(6, weightCell(doc.Record.TareWeightKG))
		write(7, weightCell(doc.Record.NetWeightKG))
		write(8, doc.Validation.WeightConsistency)
		write(9, doc.Validation.Completeness)
		write(10, strings.Join(doc.Validation.Errors, "; "))
		write(11, strings.Join(doc.Validation.Warnings, "; "))
		row++
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.xlsx", "documents", len(docs))
	return buf.Bytes(), nil
}

func weightCell(w *decimal.Decimal) string {
	if w == nil {
		return ""
	}
	return w.String()
}
