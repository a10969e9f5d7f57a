package cmd

import (
	"fmt"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Print the feature vector a customer encodes to",
	Long: `Print the 12-number feature vector that would be sent to the
prediction service, without sending it.

Examples:
  churn features --plan basic --agreement annual
  churn features --input customer.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	addRecordFlags(featuresCmd)
	featuresCmd.Flags().Bool("json", false, "print the request body as JSON")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	state, err := recordFromFlags(cmd)
	if err != nil {
		return err
	}
	v := churn.Encode(state.Record())

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(cmd, struct {
			Features churn.FeatureVector `json:"features"`
		}{v})
	}

	w := cmd.OutOrStdout()
	for i, name := range churn.FeatureNames {
		fmt.Fprintf(w, "%2d  %-20s %s\n", i+1, name, churn.FormatNumber(v[i]))
	}
	return nil
}
