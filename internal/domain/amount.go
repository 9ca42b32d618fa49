package domain

// AmountRuling is the outcome of the amount-reasonability check for one
// claim. Penalty is expressed as points subtracted from the integrity
// sub-score.
type AmountRuling struct {
	Code    ReasonCode `json:"code"`
	Penalty int        `json:"penalty"`
	Source  string     `json:"source"` // "builtin" or "policy"
}

// Built-in amount thresholds, applied when no policy bundle is
// configured or the bundle evaluation fails.
const (
	AutoInsuranceAmountLimit = 500000.0
	RefundAmountLimit        = 100000.0
)
