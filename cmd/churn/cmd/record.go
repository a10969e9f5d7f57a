package cmd

import (
	"strings"

	"github.com/f3rmion/churn/internal/config"
	"github.com/f3rmion/churn/internal/form"
	"github.com/spf13/cobra"
)

// recordFlagNames maps each form field to its command line flag.
var recordFlagNames = map[form.Field]string{
	form.FieldCustomerAge:       "age",
	form.FieldSex:               "sex",
	form.FieldTenure:            "tenure",
	form.FieldServiceUsageRate:  "usage",
	form.FieldSupportCalls:      "support-calls",
	form.FieldBillingDelay:      "billing-delay",
	form.FieldPlanType:          "plan",
	form.FieldAgreementDuration: "agreement",
	form.FieldTotalExpenditure:  "expenditure",
	form.FieldRecentActivity:    "activity",
}

// addRecordFlags registers one flag per form field plus --input.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "YAML file with customer attributes")
	for _, f := range form.Fields {
		help := f.Label()
		if choices := f.Choices(); len(choices) > 0 {
			help += " (" + strings.Join(choices, ", ") + ")"
		}
		cmd.Flags().String(recordFlagNames[f], "", help)
	}
}

// recordFromFlags builds the form from --input, then applies any field flags
// given on top of it.
func recordFromFlags(cmd *cobra.Command) (*form.State, error) {
	state := form.New()

	input, _ := cmd.Flags().GetString("input")
	if input != "" {
		r, err := config.LoadRecord(input)
		if err != nil {
			return nil, err
		}
		state.SetRecord(r)
	}

	for _, f := range form.Fields {
		name := recordFlagNames[f]
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		if err := state.Set(f, value); err != nil {
			return nil, err
		}
	}
	return state, nil
}
