package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/pipeline"
	"github.com/couchcryptid/fish-stock-map-service/internal/render"
)

const maxPredictBody = 1 << 20

// Bounds of a query year.
const (
	minYear = 1000
	maxYear = 9999
)

// Service is the query surface the handlers need.
type Service interface {
	CheckReadiness(ctx context.Context) error
	Population(q domain.Query) []domain.PopulationRow
	StatusTable() []domain.StatusRow
	SpeciesCards() []domain.SpeciesCard
	FilterOptions() domain.FilterOptions
	StatusDistribution() domain.StatusDistribution
	RenderMap(q domain.Query) (render.Artifact, error)
	PopulationChart(w io.Writer, q domain.Query) error
	WriteStatusWorkbook(w io.Writer) error
	Predict(ctx context.Context, body map[string]any) (domain.Prediction, error)
}

type handlers struct {
	svc    Service
	logger *slog.Logger
}

func (h *handlers) population(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Population(q))
}

func (h *handlers) populationChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := h.svc.PopulationChart(&buf, q); err != nil {
		h.logger.Error("population chart failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeBody(w, "image/png", "", buf.Bytes())
}

func (h *handlers) statusTable(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.StatusTable())
}

func (h *handlers) statusWorkbook(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.WriteStatusWorkbook(&buf); err != nil {
		h.logger.Error("status workbook failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeBody(w,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		`attachment; filename="status-ikan.xlsx"`,
		buf.Bytes())
}

func (h *handlers) speciesCards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.SpeciesCards())
}

func (h *handlers) filters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.FilterOptions())
}

func (h *handlers) statusDistribution(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.StatusDistribution())
}

func (h *handlers) statusMap(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.svc.RenderMap(q)
	if err != nil {
		var schemaErr *domain.SchemaResolutionError
		if errors.As(err, &schemaErr) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h.logger.Error("map render failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, mapResponse{HTML: art.HTML})
}

func (h *handlers) predict(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBody))
	if err := dec.Decode(&body); err != nil {
		writePredictError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return
	}

	pred, err := h.svc.Predict(r.Context(), body)
	if err != nil {
		var inputErr *domain.ClassificationInputError
		switch {
		case errors.As(err, &inputErr):
			writePredictError(w, http.StatusBadRequest, err)
		case errors.Is(err, pipeline.ErrClassifierDisabled):
			writePredictError(w, http.StatusServiceUnavailable, err)
		default:
			writePredictError(w, http.StatusBadGateway, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Status:       "success",
		ID:           pred.ID,
		Prediction:   pred.Label,
		Year:         pred.Features.Year,
		Province:     pred.Features.Province,
		SpeciesGroup: pred.Features.SpeciesGroup,
	})
}

// mapResponse carries the map page for the dashboard to embed. The
// degraded no-data placeholder travels the same way.
type mapResponse struct {
	HTML string `json:"html"`
}

type predictResponse struct {
	Status       string `json:"status"`
	ID           string `json:"id"`
	Prediction   string `json:"prediction"`
	Year         int    `json:"tahun"`
	Province     string `json:"provinsi"`
	SpeciesGroup string `json:"kelompok_ikan"`
}

// parseQuery reads the tahun, provinsi and ikan filters. Values are trimmed
// and empty values are absent. A present tahun must be a four-digit year,
// since the zero year means "no year filter" downstream.
func parseQuery(r *http.Request) (domain.Query, error) {
	v := r.URL.Query()
	q := domain.Query{
		Province:     strings.TrimSpace(v.Get("provinsi")),
		SpeciesGroup: strings.TrimSpace(v.Get("ikan")),
	}
	if raw := strings.TrimSpace(v.Get("tahun")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Query{}, fmt.Errorf("invalid tahun %q: must be an integer", raw)
		}
		if year < minYear || year > maxYear {
			return domain.Query{}, fmt.Errorf("invalid tahun %q: must be a four-digit year", raw)
		}
		q.Year = year
	}
	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writePredictError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"status": "error", "message": err.Error()})
}

func writeBody(w http.ResponseWriter, contentType, disposition string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // client may have gone away
}
