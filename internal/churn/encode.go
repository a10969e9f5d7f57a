package churn

import (
	"math"
	"strconv"
	"strings"
)

// FeatureCount is the length of the vector the prediction model expects.
const FeatureCount = 12

// FeatureVector is the positional input to the prediction model.
//
// The order is a wire contract with the model: changing it silently corrupts
// every prediction.
type FeatureVector [FeatureCount]float64

// FeatureNames labels each position of a FeatureVector.
var FeatureNames = [FeatureCount]string{
	"CustomerAge",
	"SexMale",
	"Tenure",
	"ServiceUsageRate",
	"SupportCalls",
	"BillingDelay",
	"PlanPremium",
	"PlanStandard",
	"PlanBasic",
	"AgreementMonthly",
	"AgreementQuarterly",
	"AgreementAnnual",
}

// Encode maps a record onto the model's feature vector.
// TotalExpenditure and RecentActivity are not part of the vector.
func Encode(r FormRecord) FeatureVector {
	return FeatureVector{
		r.CustomerAge,
		indicator(r.Sex == SexMale),
		r.Tenure,
		r.ServiceUsageRate,
		r.SupportCalls,
		r.BillingDelay,
		indicator(r.PlanType == PlanPremium),
		indicator(r.PlanType == PlanStandard),
		indicator(r.PlanType == PlanBasic),
		indicator(r.AgreementDuration == AgreementMonthly),
		indicator(r.AgreementDuration == AgreementQuarterly),
		indicator(r.AgreementDuration == AgreementAnnual),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// MarshalJSON writes the vector as a number array. Values that JSON cannot
// represent (NaN, ±Inf) are written as null and still sent.
func (v FeatureVector) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// ParseNumber coerces form text to a number the way an integer input does:
// leading whitespace is skipped, an optional sign and the leading run of
// digits are read, and anything after is ignored. Text with no leading
// digits yields NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return math.NaN()
	}
	// Only a range error is possible here; f is then ±Inf.
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

// FormatNumber is the inverse of ParseNumber for display. NaN renders empty.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
