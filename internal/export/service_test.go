package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/weighlog/weighbridge-parser/internal/entity"
)

func sampleDocs() []entity.ParsedDocument {
	gross := decimal.NewFromInt(12480)
	tare := decimal.NewFromInt(7470)
	net := decimal.NewFromInt(5010)
	vehicle := "8713"
	date := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	return []entity.ParsedDocument{
		{
			ID:         uuid.New(),
			SourcePath: "receipts/sample_01.json",
			Record: entity.NormalizedRecord{
				GrossWeightKG:   &gross,
				TareWeightKG:    &tare,
				NetWeightKG:     &net,
				VehicleNumber:   &vehicle,
				MeasurementDate: &date,
				RawText:         "...",
			},
			Validation: entity.ValidationReport{
				Errors:            []string{},
				Warnings:          []string{},
				Completeness:      0.5,
				IsValid:           true,
				WeightConsistency: true,
			},
			ParsedAt: time.Now().UTC(),
		},
		{
			ID:         uuid.New(),
			SourcePath: "receipts/sample_02.json",
			Record:     entity.NormalizedRecord{RawText: ""},
			Validation: entity.ValidationReport{
				Errors:            []string{"missing critical fields: gross_weight_kg, tare_weight_kg, net_weight_kg"},
				Warnings:          []string{"missing important fields: vehicle_number, measurement_date"},
				Completeness:      0,
				IsValid:           false,
				WeightConsistency: true,
			},
			ParsedAt: time.Now().UTC(),
		},
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	svc := NewService(nil)
	docs := sampleDocs()

	out, err := svc.MarshalJSON(docs, "  ")
	require.NoError(t, err)

	var decoded []entity.ParsedDocument
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, docs[0].ID, decoded[0].ID)
	require.NotNil(t, decoded[0].Record.GrossWeightKG)
	assert.True(t, decoded[0].Record.GrossWeightKG.Equal(decimal.NewFromInt(12480)),
		"weights survive the round trip exactly")
	assert.False(t, decoded[1].Validation.IsValid)
}

func TestDocumentsXLSX(t *testing.T) {
	svc := NewService(nil)
	docs := sampleDocs()

	out, err := svc.DocumentsXLSX(docs)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Documents")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per document")

	assert.Equal(t, "Source File", rows[0][0])
	assert.Equal(t, "receipts/sample_01.json", rows[1][0])
	assert.Equal(t, "VALID", rows[1][1])
	assert.Equal(t, "2026-02-02", rows[1][2])
	assert.Equal(t, "12480", rows[1][4])
	assert.Equal(t, "INVALID", rows[2][1])
}
