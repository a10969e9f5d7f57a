package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict churn for one customer without the interactive form",
	Long: `Send one customer's attributes to the prediction service and print
the result with its likely reasons.

Attributes come from --input, then from individual flags. Anything not
given keeps the form's default.

Examples:
  churn predict --age 34 --tenure 6 --support-calls 8 --billing-delay 3
  churn predict --input customer.yaml --plan premium
  churn predict --input customer.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	addRecordFlags(predictCmd)
	predictCmd.Flags().Bool("json", false, "print the outcome as JSON")
}

func runPredict(cmd *cobra.Command, args []string) error {
	state, err := recordFromFlags(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	state.Submit(context.Background(), newPipeline(log))

	if msg := state.Error(); msg != "" {
		return fail(cmd, msg)
	}
	out, _ := state.Outcome()

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(cmd, out)
	}
	printOutcome(cmd, out)
	return nil
}

func printOutcome(cmd *cobra.Command, out churn.Outcome) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, out.Label.Headline())
	if out.Reasons != "" {
		fmt.Fprintf(w, "  Reasons: %s\n", out.Reasons)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
