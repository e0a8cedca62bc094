package patterns

import "github.com/weighlog/weighbridge-parser/constants"

// DefaultSources is the built-in rule table for Korean weighbridge receipts.
// Order within a field is a hard invariant: earlier entries carry a label and
// structural context, later ones are progressively looser fallbacks. The
// extractor stops at the first match, so a generic fallback never shadows a
// labeled pattern.
var DefaultSources = map[constants.Field][]string{
	constants.FieldDate: {
		// labeled YYYY-MM-DD / YYYY/MM/DD / YYYY.MM.DD
		`(?:계량\s*일자|날\s*짜|일\s*시|일\s*자)[\s:：]*(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})`,
		// bare date immediately followed by a clock time
		`(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})\s*\d{2}:\d{2}`,
		// native word form: YYYY년 MM월 DD일
		`(\d{4}년\s*\d{1,2}월\s*\d{1,2}일)`,
	},
	constants.FieldTime: {
		`(\d{1,2}:\d{2}:\d{2})`,
		`(\d{1,2}:\d{2})`,
		`(\d{1,2}시\s*\d{1,2}분)`,
	},
	constants.FieldVehicleNumber: {
		`(?:차량\s*번호|차\s*번호|차량No\.|차량\s*No)[\s:：]*([0-9가-힣]{2,20})`,
		`(?:번호|No\.?)[\s:：]*([0-9]{4,10})`,
	},
	constants.FieldGrossWeight: {
		// label, a clock time, then a digit group the OCR split in two
		`(?:총\s*중\s*량|총중량)[\s:：]*(?:\d{1,2}시\s*\d{1,2}분|\d{1,2}:\d{2})\s*(\d{1,2})\s+(\d{3})\s*kg`,
		`(?:총\s*중\s*량|총중량)[\s:：]*(?:(?:\d{1,2}시\s*\d{1,2}분|\d{1,2}:\d{2})\s*)?(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?:총\s*중\s*량|총중량)[\s:：]*(?:[^\d]*)(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		// unlabeled: timestamp directly followed by a weight
		`\d{2}:\d{2}:\d{2}\s+(\d{1,3}[,\s]?\d{3})\s*kg`,
	},
	constants.FieldTareWeight: {
		// label, a clock time, then a split digit group (e.g. "02 : 13 7 560 kg")
		`(?:차\s*중\s*량|차중량|공\s*차\s*중\s*량|공차중량)[\s:：]*(?:\d{1,2}\s*:\s*\d{2})\s*(\d{1,2})\s+(\d{3})\s*kg`,
		`(?:차\s*중\s*량|차중량|공\s*차\s*중\s*량|공차중량)[\s:：]*(?:(?:\d{1,2}시\s*\d{1,2}분|\d{1,2}:\d{2})\s*)?(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		`(?:차\s*중\s*량|차중량|공\s*차\s*중\s*량|공차중량)[\s:：]*(?:[^\d]*)(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		// bare "중량:" with a timestamp prefix
		`중\s*량[\s:：]*\d{2}:\d{2}:\d{2}\s+(\d{1,3}[,\s]?\d{3})\s*kg`,
	},
	constants.FieldNetWeight: {
		`(?:실\s*중\s*량|실중량)[\s:：]*(\d{1,3}[,\s]?\d{3}|\d{1,6})\s*kg`,
		// split digit group like "5 900"
		`(?:실\s*중\s*량|실중량)[\s:：]*(\d{1,2})\s+(\d{3})\s*kg`,
	},
	constants.FieldCustomerName: {
		`(?:거\s*래\s*처|거래처|상\s*호|상호|회\s*사\s*명|회사명)[\s:：]*([가-힣()]{2,30})`,
	},
	constants.FieldProductName: {
		`(?:품\s*명|품명|제\s*품\s*명|제품명)[\s:：]*([가-힣]{1,20})`,
	},
	constants.FieldTransactionType: {
		`(?:구\s*분)[\s:：]*(입고|출고)`,
		`(입고|출고)`,
	},
	constants.FieldMeasurementID: {
		`(?:계량\s*횟수|ID-NO)[\s:：]*(\d{4,10})`,
		`(?:NO|번호)[\s:：]*(\d{4,10})`,
	},
	constants.FieldLocation: {
		`\(주\)\s*([가-힣\s]{2,20})`,
		`([가-힣]{2,10}(?:환경|바이오|리사이클링|C&S)(?:\(주\))?)`,
	},
}
