// Package cmd contains all CLI commands for the churn tool.
package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/churn/internal/config"
	"github.com/f3rmion/churn/internal/form"
	"github.com/f3rmion/churn/internal/logger"
	"github.com/f3rmion/churn/internal/predict"
	"github.com/f3rmion/churn/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// settings is resolved once flags are parsed.
var settings config.Settings

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "churn",
	Short: "Customer churn prediction form",
	Long: `churn collects customer details, sends them to a churn prediction
service and explains the result.

The ten attributes are encoded into a fixed 12-number feature vector:
  age, sex, tenure, usage rate, support calls, billing delay,
  plan (premium/standard/basic) and agreement (monthly/quarterly/annual).

Running 'churn' without arguments launches the interactive form.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runForm,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/churn/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", predict.DefaultEndpoint, "prediction service URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout (0 waits indefinitely)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag(config.KeyEndpoint, rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag(config.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadSettings reads flags, environment and config file.
func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	settings = s
	return nil
}

// newLogger builds the logger for a command. The interactive form only logs
// to a file; other commands log warnings to stderr, or everything with
// --verbose.
func newLogger(interactive bool) (*logger.Logger, error) {
	opts := logger.Options{
		Mode:   settings.Log.Mode,
		Level:  settings.Log.Level,
		Output: settings.Log.File,
	}
	if !interactive && opts.Output == "" {
		opts.Output = "stderr"
		opts.Level = "warn"
	}
	if settings.Verbose {
		opts.Level = "debug"
	}
	return logger.New(opts)
}

// newPipeline wires the prediction client from settings.
func newPipeline(log *logger.Logger) *predict.Pipeline {
	client := predict.NewClient(settings.Endpoint,
		predict.WithTimeout(settings.Timeout),
		predict.WithLogger(log),
	)
	return predict.NewPipeline(client, log)
}

// runForm launches the interactive form.
func runForm(cmd *cobra.Command, args []string) error {
	log, err := newLogger(true)
	if err != nil {
		return err
	}
	defer log.Sync()

	p := tea.NewProgram(
		tui.NewApp(form.New(), newPipeline(log), settings.Endpoint, log),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// errReported is returned once a failure has already been shown to the user.
var errReported = errors.New("already reported")

// fail prints msg to stderr and returns errReported.
func fail(cmd *cobra.Command, msg string) error {
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return errReported
}
