package churn

import "strings"

// Reason sentences in the order they are evaluated.
const (
	ReasonShortTenure   = "Short tenure indicates less loyalty or satisfaction."
	ReasonSupportCalls  = "High number of support calls may indicate unresolved issues."
	ReasonBillingDelays = "Billing delays suggest dissatisfaction with billing services."
)

type reasonRule struct {
	applies func(FormRecord) bool
	text    string
}

var reasonRules = []reasonRule{
	{func(r FormRecord) bool { return r.Tenure < 12 }, ReasonShortTenure},
	{func(r FormRecord) bool { return r.SupportCalls > 5 }, ReasonSupportCalls},
	{func(r FormRecord) bool { return r.BillingDelay > 0 }, ReasonBillingDelays},
}

// DeriveReasons returns the sentences whose rule holds for r, in rule order.
// It is only meaningful for a churn prediction. NaN fields match no rule.
func DeriveReasons(r FormRecord) []string {
	var out []string
	for _, rule := range reasonRules {
		if rule.applies(r) {
			out = append(out, rule.text)
		}
	}
	return out
}

// ReasonText joins DeriveReasons with single spaces. It may be empty.
func ReasonText(r FormRecord) string {
	return strings.Join(DeriveReasons(r), " ")
}

// OutcomeFor builds the outcome shown for a prediction on r.
func OutcomeFor(r FormRecord, label Label) Outcome {
	if label == LabelChurn {
		return Outcome{Label: LabelChurn, Reasons: ReasonText(r)}
	}
	return Outcome{Label: LabelStay, Reasons: StayReason}
}
