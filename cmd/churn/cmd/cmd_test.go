package cmd

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/predict"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout and stderr.
// Flags are reset first because cobra keeps them between executions.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""

	resetFlag := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	reset := func(c *cobra.Command) {
		c.Flags().VisitAll(resetFlag)
		c.PersistentFlags().VisitAll(resetFlag)
	}
	reset(rootCmd)
	for _, c := range rootCmd.Commands() {
		reset(c)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func endpoint(t *testing.T, status int, body string, got *[]byte) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			*got, _ = io.ReadAll(r.Body)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestPredict_Churn(t *testing.T) {
	var body []byte
	url := endpoint(t, http.StatusOK, `{"prediction":1}`, &body)

	out, _, err := run(t, "predict", "--endpoint", url,
		"--tenure", "3", "--support-calls", "2", "--billing-delay", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "The customer is likely to churn")
	assert.Contains(t, out, "Reasons: "+churn.ReasonShortTenure)
	assert.JSONEq(t, `{"features":[0,1,3,0,2,0,0,1,0,1,0,0]}`, string(body))
}

func TestPredict_StayJSON(t *testing.T) {
	url := endpoint(t, http.StatusOK, `{"prediction":0}`, nil)

	out, _, err := run(t, "predict", "--endpoint", url, "--json", "--support-calls", "9")
	require.NoError(t, err)

	assert.JSONEq(t, `{"label":"stay","reasons":"`+churn.StayReason+`"}`, out)
}

func TestPredict_ServerError(t *testing.T) {
	url := endpoint(t, http.StatusInternalServerError, ``, nil)

	_, stderr, err := run(t, "predict", "--endpoint", url)

	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, stderr, predict.UserMessage)
}

func TestPredict_InputFileWithOverride(t *testing.T) {
	var body []byte
	url := endpoint(t, http.StatusOK, `{"prediction":0}`, &body)

	input := filepath.Join(t.TempDir(), "customer.yaml")
	require.NoError(t, os.WriteFile(input, []byte("customer_age: 52\nsex: Female\nplan_type: Basic\n"), 0644))

	_, _, err := run(t, "predict", "--endpoint", url, "--input", input, "--agreement", "annual")
	require.NoError(t, err)

	assert.JSONEq(t, `{"features":[52,0,0,0,0,0,0,0,1,0,0,1]}`, string(body))
}

func TestPredict_BadChoice(t *testing.T) {
	_, _, err := run(t, "predict", "--plan", "gold")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errReported))
}

func TestFeatures(t *testing.T) {
	out, _, err := run(t, "features", "--json", "--age", "x", "--plan", "premium")
	require.NoError(t, err)
	assert.JSONEq(t, `{"features":[null,1,0,0,0,0,1,0,0,1,0,0]}`, out)

	out, _, err = run(t, "features", "--tenure", "14")
	require.NoError(t, err)
	assert.Contains(t, out, " 3  Tenure")
	assert.Contains(t, out, "14")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	out, _, err := run(t, "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "customer.example.yaml"))
	assert.Contains(t, out, "Created")

	_, _, err = run(t, "init", "--config", path)
	assert.Error(t, err, "existing config must not be overwritten without --force")
}
