package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// FeatureVector is the classifier input. JSON names follow the columns the
// model was trained on.
type FeatureVector struct {
	Year         int     `json:"Tahun"`
	Province     string  `json:"Provinsi"`
	SpeciesGroup string  `json:"Kelompok Ikan"`
	Effort       float64 `json:"Effort (kapal)"`
	CPUE         float64 `json:"CPUE (Ton/Trip)"`
	CatchTons    float64 `json:"Hasil Tangkapan / Catch (Ton)"`
	TPC          float64 `json:"TP_C"`
	TPE          float64 `json:"TP_E"`
}

// Classifier predicts a stock status label from one feature vector.
type Classifier interface {
	Predict(ctx context.Context, features FeatureVector) (string, error)
}

// Prediction is a successful classification.
type Prediction struct {
	ID          string        `json:"id"`
	Label       string        `json:"prediction"`
	Features    FeatureVector `json:"features"`
	PredictedAt time.Time     `json:"predicted_at"`
}

// NewPrediction stamps a classification result with an ID and time.
func NewPrediction(features FeatureVector, label string) Prediction {
	return Prediction{
		ID:          uuid.NewString(),
		Label:       label,
		Features:    features,
		PredictedAt: Now(),
	}
}

// numericFields maps request keys onto feature setters. Missing numeric
// values default to zero.
var numericFields = []struct {
	key string
	set func(*FeatureVector, float64)
}{
	{"effort", func(f *FeatureVector, v float64) { f.Effort = v }},
	{"cpue", func(f *FeatureVector, v float64) { f.CPUE = v }},
	{"catch", func(f *FeatureVector, v float64) { f.CatchTons = v }},
	{"tp_c", func(f *FeatureVector, v float64) { f.TPC = v }},
	{"tp_e", func(f *FeatureVector, v float64) { f.TPE = v }},
}

// ParseFeatureVector reads a prediction request body. tahun is required;
// every other field is optional. Values may be JSON numbers or numeric
// strings.
func ParseFeatureVector(body map[string]any) (FeatureVector, error) {
	var f FeatureVector

	rawYear, ok := body["tahun"]
	if !ok || rawYear == nil || rawYear == "" {
		return f, &ClassificationInputError{Field: "tahun", Reason: "is required"}
	}
	year, err := cast.ToIntE(trimString(rawYear))
	if err != nil {
		return f, &ClassificationInputError{Field: "tahun", Reason: err.Error()}
	}
	f.Year = year

	if f.Province, err = optionalString(body, "provinsi"); err != nil {
		return f, err
	}
	if f.SpeciesGroup, err = optionalString(body, "kelompok_ikan"); err != nil {
		return f, err
	}

	for _, field := range numericFields {
		raw, ok := body[field.key]
		if !ok || raw == nil || raw == "" {
			continue
		}
		v, err := cast.ToFloat64E(trimString(raw))
		if err != nil {
			return f, &ClassificationInputError{Field: field.key, Reason: err.Error()}
		}
		field.set(&f, v)
	}
	return f, nil
}

func optionalString(body map[string]any, key string) (string, error) {
	raw, ok := body[key]
	if !ok || raw == nil {
		return "", nil
	}
	if _, isMap := raw.(map[string]any); isMap {
		return "", &ClassificationInputError{Field: key, Reason: "must be a string"}
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", &ClassificationInputError{Field: key, Reason: err.Error()}
	}
	return strings.TrimSpace(s), nil
}

func trimString(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}
