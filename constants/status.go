package constants

// DocStatus is the canonical status for rows in parsed_documents.
type DocStatus string

// Stable values (store these exact strings in DB).
const (
	DocStatusValid   DocStatus = "VALID"   // no tier-1 errors
	DocStatusReview  DocStatus = "REVIEW"  // valid but carries warnings
	DocStatusInvalid DocStatus = "INVALID" // tier-1 errors present
)

// StatusFor classifies a document from its validation outcome.
func StatusFor(isValid bool, warningCount int) DocStatus {
	switch {
	case !isValid:
		return DocStatusInvalid
	case warningCount > 0:
		return DocStatusReview
	default:
		return DocStatusValid
	}
}
