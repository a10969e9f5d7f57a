// Package churn provides the customer record, its feature encoding and the
// heuristic reasons shown next to a churn prediction.
package churn

import (
	"fmt"
	"strings"
)

// Sex is the customer's sex as collected by the form.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// PlanType is the customer's subscription plan.
type PlanType string

const (
	PlanBasic    PlanType = "Basic"
	PlanStandard PlanType = "Standard"
	PlanPremium  PlanType = "Premium"
)

// AgreementDuration is the length of the customer's contract.
type AgreementDuration string

const (
	AgreementMonthly   AgreementDuration = "Monthly"
	AgreementQuarterly AgreementDuration = "Quarterly"
	AgreementAnnual    AgreementDuration = "Annual"
)

// Choices in display order.
var (
	Sexes              = []Sex{SexMale, SexFemale}
	PlanTypes          = []PlanType{PlanBasic, PlanStandard, PlanPremium}
	AgreementDurations = []AgreementDuration{AgreementMonthly, AgreementQuarterly, AgreementAnnual}
)

// FormRecord holds the ten attributes collected for one customer.
//
// Numeric attributes are float64 so that text which does not parse can be
// carried through as NaN. Nothing is range checked.
type FormRecord struct {
	CustomerAge       float64           `yaml:"customer_age" json:"customer_age"`
	Sex               Sex               `yaml:"sex" json:"sex"`
	Tenure            float64           `yaml:"tenure" json:"tenure"` // months
	ServiceUsageRate  float64           `yaml:"service_usage_rate" json:"service_usage_rate"`
	SupportCalls      float64           `yaml:"support_calls" json:"support_calls"`
	BillingDelay      float64           `yaml:"billing_delay" json:"billing_delay"` // 0 = none
	PlanType          PlanType          `yaml:"plan_type" json:"plan_type"`
	AgreementDuration AgreementDuration `yaml:"agreement_duration" json:"agreement_duration"`
	TotalExpenditure  float64           `yaml:"total_expenditure" json:"total_expenditure"`
	RecentActivity    float64           `yaml:"recent_activity" json:"recent_activity"`
}

// DefaultRecord returns the record a fresh form starts with.
func DefaultRecord() FormRecord {
	return FormRecord{
		Sex:               SexMale,
		PlanType:          PlanStandard,
		AgreementDuration: AgreementMonthly,
	}
}

// ParseSex parses a sex by name, ignoring case.
func ParseSex(s string) (Sex, error) {
	for _, v := range Sexes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown sex %q (want one of Male, Female)", s)
}

// ParsePlanType parses a plan type by name, ignoring case.
func ParsePlanType(s string) (PlanType, error) {
	for _, v := range PlanTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown plan type %q (want one of Basic, Standard, Premium)", s)
}

// ParseAgreementDuration parses an agreement duration by name, ignoring case.
func ParseAgreementDuration(s string) (AgreementDuration, error) {
	for _, v := range AgreementDurations {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown agreement duration %q (want one of Monthly, Quarterly, Annual)", s)
}

// Label is the binary prediction result.
type Label string

const (
	LabelStay  Label = "stay"
	LabelChurn Label = "churn"
)

// Headline returns the sentence shown above the reasons.
func (l Label) Headline() string {
	if l == LabelChurn {
		return "The customer is likely to churn"
	}
	return "The customer is likely to stay"
}

// StayReason is shown whenever the prediction is not churn.
const StayReason = "The customer shows satisfactory engagement and service usage."

// Outcome is the result of one submission. It is produced fresh every time.
type Outcome struct {
	Label   Label  `json:"label"`
	Reasons string `json:"reasons"`
}

// String renders the outcome as headline followed by reasons.
func (o Outcome) String() string {
	if o.Reasons == "" {
		return o.Label.Headline()
	}
	return o.Label.Headline() + "\n" + o.Reasons
}
