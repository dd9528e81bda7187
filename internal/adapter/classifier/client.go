package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/observability"
)

// ErrEmptyPrediction is returned when the model answers without a label.
var ErrEmptyPrediction = errors.New("classifier returned an empty prediction")

// Client implements domain.Classifier against a model-serving HTTP endpoint.
// The endpoint accepts one feature vector as JSON and answers
// {"prediction": "<label>"}.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a classifier client.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Predict sends features to the model. A 400 or 422 answer is reported as a
// *domain.ClassificationInputError carrying the model's message.
func (c *Client) Predict(ctx context.Context, features domain.FeatureVector) (string, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("encode features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ClassifierDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return "", &domain.ClassificationInputError{Reason: errorMessage(resp.Body)}
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("classifier error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	label := strings.TrimSpace(out.Prediction)
	if label == "" {
		return "", ErrEmptyPrediction
	}

	c.logger.Debug("classifier prediction", "label", label, "year", features.Year, "province", features.Province)
	return label, nil
}

// errorMessage extracts a message from a model rejection. JSON bodies of the
// form {"error": ...} or {"message": ...} are unwrapped; anything else is
// returned as text.
func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "rejected by classifier"
}

type response struct {
	Prediction string `json:"prediction"`
}
