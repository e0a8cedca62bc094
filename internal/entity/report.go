package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationReport is the frozen three-tier outcome of validating one record.
// Errors block validity; warnings flag the record for review; completeness is
// the informational score. WeightConsistency reflects only the mass-balance
// check and is independent of IsValid.
type ValidationReport struct {
	Errors            []string         `json:"errors"`
	Warnings          []string         `json:"warnings"`
	Completeness      float64          `json:"completeness"`
	IsValid           bool             `json:"is_valid"`
	WeightConsistency bool             `json:"weight_consistency"`
	ComputedNetKG     *decimal.Decimal `json:"computed_net_weight_kg,omitempty"`
}

// ParsedDocument bundles one receipt's typed record with its validation
// report for transfer between layers.
type ParsedDocument struct {
	ID         uuid.UUID        `json:"id"`
	SourcePath string           `json:"source_path,omitempty"`
	Record     NormalizedRecord `json:"record"`
	Validation ValidationReport `json:"validation"`
	ParsedAt   time.Time        `json:"parsed_at"`
}
