// Package normalize converts raw extracted strings into typed values,
// tolerating the format variance OCR output carries.
package normalize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/weighlog/weighbridge-parser/constants"
	"github.com/weighlog/weighbridge-parser/internal/entity"
	"github.com/weighlog/weighbridge-parser/internal/extract"
)

var (
	reSeparators       = regexp.MustCompile(`[,\s]`)
	reKoreanDate       = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)
	reTrailingArtifact = regexp.MustCompile(`-\d{5,6}$`) // OCR suffix like "-00004"
	reLooseYMD         = regexp.MustCompile(`^(\d{4})([-/.])(\d{1,2})[-/.](\d{1,2})$`)
	reKoreanTime       = regexp.MustCompile(`(\d{1,2})시\s*(\d{1,2})분`)
	reClockTime        = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reInnerSpace       = regexp.MustCompile(`\s+`)
)

// dateLayouts is the ordered list of accepted calendar formats. Inputs are
// zero-padded before matching, so each layout covers 1- and 2-digit
// month/day variants.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
}

// Normalizer converts an extraction result to a typed record. Conversion
// never fails the caller: every failure path degrades to field absence plus
// a diagnostic log entry, so partial data survives.
type Normalizer struct {
	Log *slog.Logger
}

func NewNormalizer(log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{Log: log}
}

// Normalize converts every present raw field to its typed form.
func (n *Normalizer) Normalize(raw extract.Result) entity.NormalizedRecord {
	rec := entity.NormalizedRecord{
		GrossWeightKG:   n.weight(raw, constants.FieldGrossWeight),
		TareWeightKG:    n.weight(raw, constants.FieldTareWeight),
		NetWeightKG:     n.weight(raw, constants.FieldNetWeight),
		VehicleNumber:   n.vehicleNumber(raw),
		MeasurementDate: n.date(raw),
		MeasurementTime: n.timeOfDay(raw),
		CustomerName:    n.text(raw, constants.FieldCustomerName),
		ProductName:     n.text(raw, constants.FieldProductName),
		TransactionType: n.text(raw, constants.FieldTransactionType),
		MeasurementID:   n.text(raw, constants.FieldMeasurementID),
		Location:        n.text(raw, constants.FieldLocation),
	}
	n.Log.Info("normalize.ok", "fields_present", rec.PresentCount())
	return rec
}

// weight strips grouping separators and internal whitespace, then parses an
// exact decimal. Negative masses are treated as conversion failures.
func (n *Normalizer) weight(raw extract.Result, field constants.Field) *decimal.Decimal {
	s, ok := raw.Get(field)
	if !ok {
		return nil
	}
	cleaned := reSeparators.ReplaceAllString(s, "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		n.Log.Warn("normalize.weight_failed", "field", field, "raw", s, "error", err)
		return nil
	}
	if d.IsNegative() {
		n.Log.Warn("normalize.weight_negative", "field", field, "value", d.String())
		return nil
	}
	return &d
}

func (n *Normalizer) date(raw extract.Result) *time.Time {
	s, ok := raw.Get(constants.FieldDate)
	if !ok {
		return nil
	}
	// Rewrite the native word form (YYYY년 MM월 DD일) to dashed YMD.
	if m := reKoreanDate.FindStringSubmatch(s); m != nil {
		s = fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}
	s = strings.TrimSpace(reTrailingArtifact.ReplaceAllString(s, ""))
	// Zero-pad month and day so the fixed layouts below apply.
	if m := reLooseYMD.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[3])
		day, _ := strconv.Atoi(m[4])
		s = fmt.Sprintf("%s%s%02d%s%02d", m[1], m[2], month, m[2], day)
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	n.Log.Warn("normalize.date_failed", "raw", s)
	return nil
}

// timeOfDay canonicalizes to "HH:MM" or "HH:MM:SS". Kept as a string: the
// receipt carries a wall-clock reading with no date or zone attached.
func (n *Normalizer) timeOfDay(raw extract.Result) *string {
	s, ok := raw.Get(constants.FieldTime)
	if !ok {
		return nil
	}
	if m := reKoreanTime.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		out := fmt.Sprintf("%02d:%02d", hour, minute)
		return &out
	}
	if m := reClockTime.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		out := fmt.Sprintf("%02d:%s", hour, m[2])
		if m[3] != "" {
			out += ":" + m[3]
		}
		return &out
	}
	n.Log.Warn("normalize.time_failed", "raw", s)
	return nil
}

// vehicleNumber removes all internal whitespace.
func (n *Normalizer) vehicleNumber(raw extract.Result) *string {
	s, ok := raw.Get(constants.FieldVehicleNumber)
	if !ok {
		return nil
	}
	out := reInnerSpace.ReplaceAllString(strings.TrimSpace(s), "")
	if out == "" {
		return nil
	}
	return &out
}

// text collapses runs of whitespace and trims.
func (n *Normalizer) text(raw extract.Result, field constants.Field) *string {
	s, ok := raw.Get(field)
	if !ok {
		return nil
	}
	out := reInnerSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	if out == "" {
		return nil
	}
	return &out
}

// ComputedNet returns gross - tare when both are present.
func ComputedNet(gross, tare *decimal.Decimal) *decimal.Decimal {
	if gross == nil || tare == nil {
		return nil
	}
	net := gross.Sub(*tare)
	return &net
}
