package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weighlog/weighbridge-parser/internal/common"
	"github.com/weighlog/weighbridge-parser/internal/entity"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func str(s string) *string { return &s }

func newTestValidator() *Validator {
	v := NewValidator(common.ValidationConfig{}, nil)
	// pin "now" so date checks are deterministic
	v.now = func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) }
	return v
}

func completeRecord() entity.NormalizedRecord {
	date := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	return entity.NormalizedRecord{
		GrossWeightKG:   dec(12480),
		TareWeightKG:    dec(7470),
		NetWeightKG:     dec(5010),
		VehicleNumber:   str("8713"),
		MeasurementDate: &date,
	}
}

func TestValidateCompleteValidRecord(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()

	report := v.Validate(&rec)

	assert.True(t, report.IsValid)
	assert.True(t, report.WeightConsistency)
	assert.Empty(t, report.Errors)
	require.NotNil(t, report.ComputedNetKG)
	assert.True(t, report.ComputedNetKG.Equal(decimal.NewFromInt(5010)))
}

func TestValidateMassBalanceDiscrepancy(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.GrossWeightKG = dec(13460)
	rec.TareWeightKG = dec(7560)
	// recorded net stays 5010; calculated is 5900, off by 890 > tolerance 1

	report := v.Validate(&rec)

	assert.True(t, report.IsValid, "a balance discrepancy is a warning, not an error")
	assert.False(t, report.WeightConsistency)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "discrepancy")
	assert.Contains(t, report.Warnings[0], "890")
	require.NotNil(t, report.ComputedNetKG)
	assert.True(t, report.ComputedNetKG.Equal(decimal.NewFromInt(5900)))
}

func TestValidateWithinTolerance(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.NetWeightKG = dec(5009) // off by exactly the default tolerance of 1

	report := v.Validate(&rec)

	assert.True(t, report.WeightConsistency)
	assert.Empty(t, report.Warnings)
}

func TestValidateGrossNotAboveTare(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.GrossWeightKG = dec(7470)
	rec.TareWeightKG = dec(12480)
	rec.NetWeightKG = dec(-5010)

	report := v.Validate(&rec)

	assert.False(t, report.IsValid)
	require.NotEmpty(t, report.Errors)
	assert.Contains(t, report.Errors[0], "must be greater than")
	// the balance itself holds (gross - tare == net), and consistency reflects
	// only the balance check
	assert.True(t, report.WeightConsistency)
}

func TestValidateMissingCriticalFields(t *testing.T) {
	v := newTestValidator()

	for _, clear := range []func(*entity.NormalizedRecord){
		func(r *entity.NormalizedRecord) { r.GrossWeightKG = nil },
		func(r *entity.NormalizedRecord) { r.TareWeightKG = nil },
		func(r *entity.NormalizedRecord) { r.NetWeightKG = nil },
	} {
		rec := completeRecord()
		clear(&rec)

		report := v.Validate(&rec)

		assert.False(t, report.IsValid)
		require.NotEmpty(t, report.Errors)
		assert.Contains(t, report.Errors[0], "missing critical fields")
		assert.Nil(t, report.ComputedNetKG)
	}
}

func TestValidateMissingImportantFields(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.VehicleNumber = nil
	rec.MeasurementDate = nil

	report := v.Validate(&rec)

	assert.True(t, report.IsValid, "missing secondary fields never block validity")
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "missing important fields")
	assert.Contains(t, report.Warnings[0], "vehicle_number")
	assert.Contains(t, report.Warnings[0], "measurement_date")
}

func TestValidateDatePlausibility(t *testing.T) {
	v := newTestValidator()

	future := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := completeRecord()
	rec.MeasurementDate = &future
	report := v.Validate(&rec)
	assert.True(t, hasWarningContaining(report, "future"))

	old := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	rec = completeRecord()
	rec.MeasurementDate = &old
	report = v.Validate(&rec)
	assert.True(t, hasWarningContaining(report, "unusually old"))
}

func TestValidateWeightPlausibility(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.GrossWeightKG = dec(150000)
	rec.TareWeightKG = dec(140000)
	rec.NetWeightKG = dec(10000)

	report := v.Validate(&rec)

	assert.True(t, hasWarningContaining(report, "reasonable maximum"))
}

func TestValidateCompleteness(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.CustomerName = str("대한상사")
	rec.ProductName = str("고철")
	// 7 of 10 tracked fields present: three weights, vehicle, date, customer, product

	report := v.Validate(&rec)

	assert.InDelta(t, 0.7, report.Completeness, 1e-9)
}

func TestValidateEmptyRecord(t *testing.T) {
	v := newTestValidator()
	rec := entity.NormalizedRecord{}

	report := v.Validate(&rec)

	assert.False(t, report.IsValid)
	assert.True(t, report.WeightConsistency, "no masses means the balance check never ran")
	assert.Zero(t, report.Completeness)
	assert.NotEmpty(t, report.Errors)
	assert.NotEmpty(t, report.Warnings)
}

func TestValidateIsIdempotent(t *testing.T) {
	v := newTestValidator()
	rec := completeRecord()
	rec.NetWeightKG = dec(4000)

	first := v.Validate(&rec)
	second := v.Validate(&rec)

	assert.Equal(t, first, second)
}

func hasWarningContaining(report entity.ValidationReport, substr string) bool {
	for _, w := range report.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
