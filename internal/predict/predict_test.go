package predict_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/predict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEndpoint starts a server that answers every request with status and body,
// recording the last request body it saw.
func newEndpoint(t *testing.T, status int, body string) (*httptest.Server, *[]byte) {
	t.Helper()
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		got = b
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestClient_SendsFeatures(t *testing.T) {
	srv, got := newEndpoint(t, http.StatusOK, `{"prediction":0}`)
	c := predict.NewClient(srv.URL)

	r := churn.DefaultRecord()
	r.CustomerAge, r.Tenure = 30, 5

	_, err := c.Predict(context.Background(), churn.Encode(r))
	require.NoError(t, err)

	var body struct {
		Features []float64 `json:"features"`
	}
	require.NoError(t, json.Unmarshal(*got, &body))
	assert.Equal(t, []float64{30, 1, 5, 0, 0, 0, 0, 1, 0, 1, 0, 0}, body.Features)
}

func TestClient_Interpretation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want churn.Label
	}{
		{"churn", `{"prediction":1}`, churn.LabelChurn},
		{"churn as float", `{"prediction":1.0}`, churn.LabelChurn},
		{"stay", `{"prediction":0}`, churn.LabelStay},
		{"missing", `{}`, churn.LabelStay},
		{"string one", `{"prediction":"1"}`, churn.LabelStay},
		{"other number", `{"prediction":2}`, churn.LabelStay},
		{"server error object", `{"error":"bad input"}`, churn.LabelStay},
		{"array", `[1]`, churn.LabelStay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newEndpoint(t, http.StatusOK, tt.body)

			label, err := predict.NewClient(srv.URL).Predict(context.Background(), churn.Encode(churn.DefaultRecord()))

			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   predict.ErrorKind
	}{
		{"server error", http.StatusInternalServerError, `{"prediction":1}`, predict.KindStatus},
		{"not found", http.StatusNotFound, ``, predict.KindStatus},
		{"not json", http.StatusOK, `<html>`, predict.KindDecode},
		{"empty body", http.StatusOK, ``, predict.KindDecode},
		{"null body", http.StatusOK, `null`, predict.KindDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newEndpoint(t, tt.status, tt.body)

			_, err := predict.NewClient(srv.URL).Predict(context.Background(), churn.Encode(churn.DefaultRecord()))

			var reqErr *predict.RequestError
			require.True(t, errors.As(err, &reqErr), "got %v", err)
			assert.Equal(t, tt.kind, reqErr.Kind)
			assert.Equal(t, tt.status, reqErr.Status)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := predict.NewClient(url).Predict(context.Background(), churn.Encode(churn.DefaultRecord()))

	var reqErr *predict.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, predict.KindTransport, reqErr.Kind)
	assert.Zero(t, reqErr.Status)
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, predict.DefaultEndpoint, predict.NewClient("").Endpoint())
}

func TestPipeline_EndToEnd(t *testing.T) {
	t.Run("churn with one reason", func(t *testing.T) {
		srv, _ := newEndpoint(t, http.StatusOK, `{"prediction":1}`)
		p := predict.NewPipeline(predict.NewClient(srv.URL), nil)

		r := churn.DefaultRecord()
		r.Tenure, r.SupportCalls, r.BillingDelay = 3, 2, 0

		out, err := p.Run(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, churn.LabelChurn, out.Label)
		assert.Equal(t, "Short tenure indicates less loyalty or satisfaction.", out.Reasons)
	})

	t.Run("stay regardless of fields", func(t *testing.T) {
		srv, _ := newEndpoint(t, http.StatusOK, `{"prediction":0}`)
		p := predict.NewPipeline(predict.NewClient(srv.URL), nil)

		r := churn.DefaultRecord()
		r.Tenure, r.SupportCalls, r.BillingDelay = 1, 20, 9

		out, err := p.Run(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, churn.Outcome{Label: churn.LabelStay, Reasons: churn.StayReason}, out)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := newEndpoint(t, http.StatusInternalServerError, ``)
		p := predict.NewPipeline(predict.NewClient(srv.URL), nil)

		_, err := p.Run(context.Background(), churn.DefaultRecord())
		assert.Error(t, err)
	})
}
