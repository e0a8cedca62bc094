package constants

// Field identifies a semantic field extracted from a weighbridge receipt.
type Field string

// Stable values (these exact strings appear in JSON output and DB rows).
const (
	FieldGrossWeight     Field = "gross_weight_kg"
	FieldTareWeight      Field = "tare_weight_kg"
	FieldNetWeight       Field = "net_weight_kg"
	FieldVehicleNumber   Field = "vehicle_number"
	FieldDate            Field = "measurement_date"
	FieldTime            Field = "measurement_time"
	FieldCustomerName    Field = "customer_name"
	FieldProductName     Field = "product_name"
	FieldTransactionType Field = "transaction_type"
	FieldMeasurementID   Field = "measurement_id"
	FieldLocation        Field = "location"
)

// TrackedFields are the fields counted toward the completeness score.
// Measurement time is extracted but intentionally excluded here.
var TrackedFields = []Field{
	FieldGrossWeight,
	FieldTareWeight,
	FieldNetWeight,
	FieldVehicleNumber,
	FieldDate,
	FieldCustomerName,
	FieldProductName,
	FieldTransactionType,
	FieldMeasurementID,
	FieldLocation,
}

// CriticalFields must all be present for a record to be usable downstream.
var CriticalFields = []Field{
	FieldGrossWeight,
	FieldTareWeight,
	FieldNetWeight,
}

// ImportantFields are flagged with a warning when absent but do not block validity.
var ImportantFields = []Field{
	FieldVehicleNumber,
	FieldDate,
}
