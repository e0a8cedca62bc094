// Package validate classifies normalized records into a three-tier report:
// errors block validity, warnings flag for review, info scores completeness.
package validate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weighlog/weighbridge-parser/constants"
	"github.com/weighlog/weighbridge-parser/internal/common"
	"github.com/weighlog/weighbridge-parser/internal/entity"
)

// Validator applies business and plausibility rules to a normalized record.
// Pure: identical record and config always produce an identical report.
type Validator struct {
	Cfg common.ValidationConfig
	Log *slog.Logger

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time
}

func NewValidator(cfg common.ValidationConfig, log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	if cfg.WeightToleranceKG.IsZero() {
		cfg.WeightToleranceKG = decimal.NewFromInt(1)
	}
	if cfg.MaxReasonableWeightKG.IsZero() {
		cfg.MaxReasonableWeightKG = decimal.NewFromInt(100000)
	}
	if cfg.MinReasonableWeightKG.IsZero() {
		cfg.MinReasonableWeightKG = decimal.NewFromInt(1)
	}
	if cfg.DateHorizonYears <= 0 {
		cfg.DateHorizonYears = 10
	}
	return &Validator{Cfg: cfg, Log: log, now: time.Now}
}

// Validate runs every tier in a single pass and freezes the report.
// It aggregates rather than halts: maximally incomplete input still yields a
// complete report.
func (v *Validator) Validate(rec *entity.NormalizedRecord) entity.ValidationReport {
	b := newReportBuilder()

	// Tier 1: critical mass fields must all be present.
	var missing []string
	for _, f := range constants.CriticalFields {
		if !rec.FieldPresent(f) {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		b.errorf("missing critical fields: %s", strings.Join(missing, ", "))
	}

	// Tier 2: secondary identifying fields.
	var missingImportant []string
	for _, f := range constants.ImportantFields {
		if !rec.FieldPresent(f) {
			missingImportant = append(missingImportant, string(f))
		}
	}
	if len(missingImportant) > 0 {
		b.warnf("missing important fields: %s", strings.Join(missingImportant, ", "))
	}

	if len(missing) == 0 {
		v.checkWeights(rec, b)
	}
	v.checkDate(rec, b)
	v.checkVehicleNumber(rec, b)

	// Tier 3: completeness ratio over the tracked field set.
	b.completeness = float64(rec.PresentCount()) / float64(len(constants.TrackedFields))

	report := b.freeze()
	v.Log.Info("validate.done",
		"is_valid", report.IsValid,
		"weight_consistency", report.WeightConsistency,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"completeness", report.Completeness,
	)
	return report
}

// checkWeights runs the mass relationship rules. Caller guarantees all three
// mass fields are present.
func (v *Validator) checkWeights(rec *entity.NormalizedRecord, b *reportBuilder) {
	gross, tare, net := *rec.GrossWeightKG, *rec.TareWeightKG, *rec.NetWeightKG

	computed := gross.Sub(tare)
	b.computedNet = &computed

	// A vehicle cannot weigh less loaded than empty.
	if gross.LessThanOrEqual(tare) {
		b.errorf("gross weight (%s kg) must be greater than tare weight (%s kg)", gross, tare)
	}

	// WeightConsistency reflects only this balance check, independent of the
	// tier-1 outcome: |(gross - tare) - net| within tolerance, exact decimal math.
	diff := computed.Sub(net).Abs()
	if diff.GreaterThan(v.Cfg.WeightToleranceKG) {
		b.warnf("net weight discrepancy: recorded=%s kg, calculated=%s kg, difference=%s kg", net, computed, diff)
		b.weightConsistency = false
	}

	for _, w := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"gross", gross},
		{"tare", tare},
		{"net", net},
	} {
		if w.value.GreaterThan(v.Cfg.MaxReasonableWeightKG) {
			b.warnf("%s weight (%s kg) exceeds reasonable maximum", w.name, w.value)
		}
		if w.value.LessThan(v.Cfg.MinReasonableWeightKG) {
			b.warnf("%s weight (%s kg) below reasonable minimum", w.name, w.value)
		}
	}
}

func (v *Validator) checkDate(rec *entity.NormalizedRecord, b *reportBuilder) {
	if rec.MeasurementDate == nil {
		return
	}
	date := *rec.MeasurementDate
	now := v.now()
	if date.After(now) {
		b.warnf("measurement date (%s) is in the future", date.Format("2006-01-02"))
	}
	horizon := now.AddDate(-v.Cfg.DateHorizonYears, 0, 0)
	if date.Before(horizon) {
		years := int(now.Sub(date).Hours() / (24 * 365.25))
		b.warnf("measurement date (%s) is unusually old (%d years)", date.Format("2006-01-02"), years)
	}
}

func (v *Validator) checkVehicleNumber(rec *entity.NormalizedRecord, b *reportBuilder) {
	if rec.VehicleNumber == nil {
		return
	}
	n := len([]rune(*rec.VehicleNumber))
	if n < 2 {
		b.warnf("vehicle number %q is unusually short", *rec.VehicleNumber)
	}
	if n > 20 {
		b.warnf("vehicle number %q is unusually long", *rec.VehicleNumber)
	}
}

// reportBuilder accumulates findings during a single validation pass and
// freezes into an immutable report value at the end.
type reportBuilder struct {
	errors            []string
	warnings          []string
	completeness      float64
	weightConsistency bool
	computedNet       *decimal.Decimal
}

func newReportBuilder() *reportBuilder {
	return &reportBuilder{
		errors:            make([]string, 0, 2),
		warnings:          make([]string, 0, 4),
		weightConsistency: true,
	}
}

func (b *reportBuilder) errorf(format string, args ...any) {
	b.errors = append(b.errors, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) freeze() entity.ValidationReport {
	return entity.ValidationReport{
		Errors:            b.errors,
		Warnings:          b.warnings,
		Completeness:      b.completeness,
		IsValid:           len(b.errors) == 0,
		WeightConsistency: b.weightConsistency,
		ComputedNetKG:     b.computedNet,
	}
}
