package churn_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_DefaultRecord(t *testing.T) {
	v := churn.Encode(churn.DefaultRecord())

	assert.Equal(t, churn.FeatureVector{0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0}, v)
}

func TestEncode_Order(t *testing.T) {
	r := churn.FormRecord{
		CustomerAge:       41,
		Sex:               churn.SexFemale,
		Tenure:            7,
		ServiceUsageRate:  13,
		SupportCalls:      4,
		BillingDelay:      2,
		PlanType:          churn.PlanPremium,
		AgreementDuration: churn.AgreementAnnual,
		TotalExpenditure:  900,
		RecentActivity:    3,
	}

	v := churn.Encode(r)

	assert.Equal(t, churn.FeatureVector{41, 0, 7, 13, 4, 2, 1, 0, 0, 0, 0, 1}, v)
}

// Every combination of the enum fields keeps each one-hot group summing to 1.
func TestEncode_IndicatorGroups(t *testing.T) {
	for _, sex := range churn.Sexes {
		for _, plan := range churn.PlanTypes {
			for _, agreement := range churn.AgreementDurations {
				r := churn.DefaultRecord()
				r.Sex, r.PlanType, r.AgreementDuration = sex, plan, agreement

				v := churn.Encode(r)

				assert.Contains(t, []float64{0, 1}, v[1])
				assert.Equal(t, 1.0, v[6]+v[7]+v[8], "plan %s", plan)
				assert.Equal(t, 1.0, v[9]+v[10]+v[11], "agreement %s", agreement)
				assert.Equal(t, v, churn.Encode(r), "encoding must be deterministic")
			}
		}
	}
}

func TestFeatureVector_MarshalJSON(t *testing.T) {
	r := churn.DefaultRecord()
	r.CustomerAge = math.NaN()
	r.Tenure = 3

	b, err := json.Marshal(struct {
		Features churn.FeatureVector `json:"features"`
	}{churn.Encode(r)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"features":[null,1,3,0,0,0,0,1,0,1,0,0]}`, string(b))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"  17", 17},
		{"-3", -3},
		{"+8", 8},
		{"12abc", 12},
		{"3.9", 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, churn.ParseNumber(tt.in))
		})
	}

	for _, in := range []string{"", "abc", "-", " ", ".5"} {
		assert.True(t, math.IsNaN(churn.ParseNumber(in)), "ParseNumber(%q)", in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12", churn.FormatNumber(12))
	assert.Equal(t, "-4", churn.FormatNumber(-4))
	assert.Equal(t, "", churn.FormatNumber(math.NaN()))
}

func TestDeriveReasons(t *testing.T) {
	t.Run("all rules in order", func(t *testing.T) {
		r := churn.DefaultRecord()
		r.Tenure, r.SupportCalls, r.BillingDelay = 6, 8, 3

		assert.Equal(t, []string{
			churn.ReasonShortTenure,
			churn.ReasonSupportCalls,
			churn.ReasonBillingDelays,
		}, churn.DeriveReasons(r))
		assert.Equal(t,
			"Short tenure indicates less loyalty or satisfaction. "+
				"High number of support calls may indicate unresolved issues. "+
				"Billing delays suggest dissatisfaction with billing services.",
			churn.ReasonText(r))
	})

	t.Run("none match", func(t *testing.T) {
		r := churn.DefaultRecord()
		r.Tenure, r.SupportCalls, r.BillingDelay = 24, 1, 0

		assert.Empty(t, churn.DeriveReasons(r))
		assert.Equal(t, "", churn.ReasonText(r))
	})

	t.Run("boundaries", func(t *testing.T) {
		r := churn.DefaultRecord()
		r.Tenure, r.SupportCalls, r.BillingDelay = 12, 5, 0

		assert.Empty(t, churn.DeriveReasons(r))
	})

	t.Run("NaN matches nothing", func(t *testing.T) {
		r := churn.DefaultRecord()
		r.Tenure, r.SupportCalls, r.BillingDelay = math.NaN(), math.NaN(), math.NaN()

		assert.Empty(t, churn.DeriveReasons(r))
	})
}

func TestOutcomeFor(t *testing.T) {
	r := churn.DefaultRecord()
	r.Tenure, r.SupportCalls, r.BillingDelay = 3, 2, 0

	churned := churn.OutcomeFor(r, churn.LabelChurn)
	assert.Equal(t, churn.LabelChurn, churned.Label)
	assert.Equal(t, churn.ReasonShortTenure, churned.Reasons)
	assert.Equal(t, "The customer is likely to churn\n"+churn.ReasonShortTenure, churned.String())

	stayed := churn.OutcomeFor(r, churn.LabelStay)
	assert.Equal(t, churn.Outcome{Label: churn.LabelStay, Reasons: churn.StayReason}, stayed)
}

func TestParseEnums(t *testing.T) {
	sex, err := churn.ParseSex("female")
	require.NoError(t, err)
	assert.Equal(t, churn.SexFemale, sex)

	plan, err := churn.ParsePlanType(" PREMIUM ")
	require.NoError(t, err)
	assert.Equal(t, churn.PlanPremium, plan)

	agreement, err := churn.ParseAgreementDuration("quarterly")
	require.NoError(t, err)
	assert.Equal(t, churn.AgreementQuarterly, agreement)

	_, err = churn.ParsePlanType("Gold")
	assert.Error(t, err)
}
