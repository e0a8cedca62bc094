package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/weighlog/weighbridge-parser/constants"
)

// NormalizedRecord is the typed form of one weighbridge receipt. Optional
// fields are pointers; nil means the field was absent or failed conversion.
// Weights are exact decimals end to end — they are never routed through
// binary floating point, so the validator can compare against a fixed
// tolerance without rounding artifacts.
type NormalizedRecord struct {
	GrossWeightKG   *decimal.Decimal `json:"gross_weight_kg,omitempty"`
	TareWeightKG    *decimal.Decimal `json:"tare_weight_kg,omitempty"`
	NetWeightKG     *decimal.Decimal `json:"net_weight_kg,omitempty"`
	VehicleNumber   *string          `json:"vehicle_number,omitempty"`
	MeasurementDate *time.Time       `json:"measurement_date,omitempty"`
	MeasurementTime *string          `json:"measurement_time,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	ProductName     *string          `json:"product_name,omitempty"`
	TransactionType *string          `json:"transaction_type,omitempty"`
	MeasurementID   *string          `json:"measurement_id,omitempty"`
	Location        *string          `json:"location,omitempty"`
	RawText         string           `json:"raw_text"`
}

// FieldPresent reports whether the given tracked field carries a value.
func (r *NormalizedRecord) FieldPresent(f constants.Field) bool {
	switch f {
	case constants.FieldGrossWeight:
		return r.GrossWeightKG != nil
	case constants.FieldTareWeight:
		return r.TareWeightKG != nil
	case constants.FieldNetWeight:
		return r.NetWeightKG != nil
	case constants.FieldVehicleNumber:
		return r.VehicleNumber != nil
	case constants.FieldDate:
		return r.MeasurementDate != nil
	case constants.FieldTime:
		return r.MeasurementTime != nil
	case constants.FieldCustomerName:
		return r.CustomerName != nil
	case constants.FieldProductName:
		return r.ProductName != nil
	case constants.FieldTransactionType:
		return r.TransactionType != nil
	case constants.FieldMeasurementID:
		return r.MeasurementID != nil
	case constants.FieldLocation:
		return r.Location != nil
	default:
		return false
	}
}

// PresentCount counts tracked fields that carry a value.
func (r *NormalizedRecord) PresentCount() int {
	n := 0
	for _, f := range constants.TrackedFields {
		if r.FieldPresent(f) {
			n++
		}
	}
	return n
}
