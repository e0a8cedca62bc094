package pipeline

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weighlog/weighbridge-parser/internal/common"
)

const sampleReceipt = `(주) 서울환경 TEL 02-123-4567
계 량 일 자 : 2026-02-02 14:32:05
차 량 번 호 : 8713
총 중 량 : 12,480 kg
공 차 중 량 : 7,470 kg
실 중 량 : 5,010 kg
거 래 처 : 대한상사
품 명 : 고철
구 분 : 입고`

func TestParseSampleReceipt(t *testing.T) {
	p := NewPipeline(nil, common.ValidationConfig{}, nil)

	doc, err := p.Parse(context.Background(), sampleReceipt, "sample_01.txt")
	require.NoError(t, err)
	require.NotNil(t, doc)

	rec := doc.Record
	require.NotNil(t, rec.GrossWeightKG)
	assert.True(t, rec.GrossWeightKG.Equal(decimal.NewFromInt(12480)))
	require.NotNil(t, rec.TareWeightKG)
	assert.True(t, rec.TareWeightKG.Equal(decimal.NewFromInt(7470)))
	require.NotNil(t, rec.NetWeightKG)
	assert.True(t, rec.NetWeightKG.Equal(decimal.NewFromInt(5010)))
	require.NotNil(t, rec.VehicleNumber)
	assert.Equal(t, "8713", *rec.VehicleNumber)
	require.NotNil(t, rec.MeasurementDate)
	assert.Equal(t, "2026-02-02", rec.MeasurementDate.Format("2006-01-02"))
	require.NotNil(t, rec.MeasurementTime)
	assert.Equal(t, "14:32:05", *rec.MeasurementTime)

	report := doc.Validation
	assert.True(t, report.IsValid)
	assert.True(t, report.WeightConsistency)
	assert.Empty(t, report.Errors)

	assert.NotEqual(t, "", doc.ID.String())
	assert.Equal(t, "sample_01.txt", doc.SourcePath)
	assert.False(t, doc.ParsedAt.IsZero())
}

func TestParseSplitDigitsReassembly(t *testing.T) {
	p := NewPipeline(nil, common.ValidationConfig{}, nil)

	text := `총중량 : 02:13 13 460 kg
차중량 : 02 : 13 7 560 kg
실중량 : 5,010 kg`
	doc, err := p.Parse(context.Background(), text, "")
	require.NoError(t, err)

	rec := doc.Record
	require.NotNil(t, rec.GrossWeightKG)
	assert.True(t, rec.GrossWeightKG.Equal(decimal.NewFromInt(13460)))
	require.NotNil(t, rec.TareWeightKG)
	assert.True(t, rec.TareWeightKG.Equal(decimal.NewFromInt(7560)))

	// 13460 - 7560 = 5900, recorded 5010: flagged but still usable
	report := doc.Validation
	assert.True(t, report.IsValid)
	assert.False(t, report.WeightConsistency)
	assert.NotEmpty(t, report.Warnings)
}

func TestParseEmptyInput(t *testing.T) {
	p := NewPipeline(nil, common.ValidationConfig{}, nil)

	doc, err := p.Parse(context.Background(), "", "")
	require.NoError(t, err, "empty input is reported, never an error")

	assert.False(t, doc.Validation.IsValid)
	assert.Zero(t, doc.Validation.Completeness)
	assert.Equal(t, 0, doc.Record.PresentCount())
}

func TestParseHonorsCancellation(t *testing.T) {
	p := NewPipeline(nil, common.ValidationConfig{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Parse(ctx, sampleReceipt, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseIsDeterministic(t *testing.T) {
	p := NewPipeline(nil, common.ValidationConfig{}, nil)

	a, err := p.Parse(context.Background(), sampleReceipt, "x")
	require.NoError(t, err)
	b, err := p.Parse(context.Background(), sampleReceipt, "x")
	require.NoError(t, err)

	// IDs and timestamps differ per document; the content must not.
	assert.Equal(t, a.Record, b.Record)
	assert.Equal(t, a.Validation, b.Validation)
}
