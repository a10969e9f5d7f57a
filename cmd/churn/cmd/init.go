package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize churn configuration",
	Long: `Write a default config file and an example customer file.

This creates:
  - config.yaml            (endpoint, timeout, logging)
  - customer.example.yaml  (input for 'churn predict --input')`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := cfgFile
	if path == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return fmt.Errorf("finding config directory: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := config.WriteDefault(path, force); err != nil {
		return err
	}

	example := filepath.Join(filepath.Dir(path), "customer.example.yaml")
	if err := config.SaveRecord(example, churn.DefaultRecord()); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Created %s\n", path)
	fmt.Fprintf(w, "  Created %s\n", example)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Edit config.yaml if you run your own prediction service")
	fmt.Fprintf(w, "  2. Run 'churn predict --input %s' to test a prediction\n", example)
	fmt.Fprintln(w, "  3. Run 'churn' to open the interactive form")

	return nil
}
