package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testFeatures() domain.FeatureVector {
	return domain.FeatureVector{
		Year:         2023,
		Province:     "ACEH",
		SpeciesGroup: "Tuna",
		Effort:       130,
		CPUE:         2.4,
		CatchTons:    2000,
		TPC:          0.8,
		TPE:          0.9,
	}
}

func TestClient_Predict_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, contentTypeJSON, r.Header.Get(headerContentType))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, 2023, body["Tahun"], 1e-9)
		assert.Equal(t, "ACEH", body["Provinsi"])
		assert.InDelta(t, 2000, body["Hasil Tangkapan / Catch (Ton)"], 1e-9)

		w.Header().Set(headerContentType, contentTypeJSON)
		assert.NoError(t, json.NewEncoder(w).Encode(response{Prediction: " Overfishing "}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	label, err := c.Predict(context.Background(), testFeatures())
	require.NoError(t, err)
	assert.Equal(t, "Overfishing", label)
	assert.Equal(t, 1, testutil.CollectAndCount(c.metrics.ClassifierDuration))
}

func TestClient_Predict_InputRejected(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error": "could not convert string to float: 'abc'"}`))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).Predict(context.Background(), testFeatures())
			var inputErr *domain.ClassificationInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, "could not convert string to float: 'abc'", inputErr.Reason)
		})
	}
}

func TestClient_Predict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model not loaded"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Predict(context.Background(), testFeatures())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model not loaded")

	var inputErr *domain.ClassificationInputError
	assert.False(t, errors.As(err, &inputErr))
}

func TestClient_Predict_EmptyLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": ""}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Predict(context.Background(), testFeatures())
	require.ErrorIs(t, err, ErrEmptyPrediction)
}

func TestClient_Predict_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.Predict(context.Background(), testFeatures())
	require.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message": "tahun out of range"}`, "tahun out of range"},
		{"error field", `{"error": "bad input"}`, "bad input"},
		{"plain text", "nope\n", "nope"},
		{"empty", "", "rejected by classifier"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errorMessage(stringReader(tc.body)))
		})
	}
}
