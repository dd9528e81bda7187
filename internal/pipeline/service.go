package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/fish-stock-map-service/internal/dataset"
	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/observability"
	"github.com/couchcryptid/fish-stock-map-service/internal/render"
)

// ErrClassifierDisabled is returned by Predict when no classifier is configured.
var ErrClassifierDisabled = errors.New("overfishing classifier is not configured")

// Publisher receives successful predictions.
type Publisher interface {
	Publish(ctx context.Context, prediction domain.Prediction) error
}

// Service answers dashboard queries against a loaded dataset snapshot. Every
// call recomputes from the shared snapshot and never mutates it, so a
// Service is safe for concurrent use.
type Service struct {
	snapshot   *dataset.Snapshot
	classifier domain.Classifier
	publisher  Publisher
	mapOpts    render.MapOptions
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Service. A nil classifier disables Predict; a nil publisher
// disables prediction events.
func New(snapshot *dataset.Snapshot, classifier domain.Classifier, publisher Publisher, mapOpts render.MapOptions, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if snapshot != nil {
		metrics.DatasetRecords.Set(float64(len(snapshot.Records())))
		metrics.DatasetRegions.Set(float64(len(snapshot.Regions())))
		metrics.DatasetLoadedAt.Set(float64(snapshot.LoadedAt().Unix()))
	}
	return &Service{
		snapshot:   snapshot,
		classifier: classifier,
		publisher:  publisher,
		mapOpts:    mapOpts,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once the datasets are loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.snapshot == nil {
		return errors.New("datasets not loaded")
	}
	return nil
}

// Population returns the population dashboard rows matching q.
func (s *Service) Population(q domain.Query) []domain.PopulationRow {
	s.metrics.Queries.WithLabelValues("population").Inc()
	return domain.PopulationRows(domain.Filter(s.snapshot.Records(), q.Normalized()))
}

// StatusTable returns every record as a status table row.
func (s *Service) StatusTable() []domain.StatusRow {
	s.metrics.Queries.WithLabelValues("status").Inc()
	return domain.StatusRows(s.snapshot.Records())
}

// SpeciesCards returns the ecology cards for the latest year in the dataset.
func (s *Service) SpeciesCards() []domain.SpeciesCard {
	s.metrics.Queries.WithLabelValues("cards").Inc()
	return domain.SpeciesCards(s.snapshot.Records())
}

// FilterOptions returns the values offered by the dashboard filters.
func (s *Service) FilterOptions() domain.FilterOptions {
	s.metrics.Queries.WithLabelValues("filters").Inc()
	return domain.Options(s.snapshot.Records())
}

// StatusDistribution returns per-year status counts.
func (s *Service) StatusDistribution() domain.StatusDistribution {
	s.metrics.Queries.WithLabelValues("distribution").Inc()
	return domain.DistributeStatuses(s.snapshot.Records())
}

// RenderMap builds the status map for q. A filter without records yields the
// degraded no-data artifact. A polygon dataset without a usable province
// attribute yields a *domain.SchemaResolutionError.
func (s *Service) RenderMap(q domain.Query) (render.Artifact, error) {
	start := time.Now()
	s.metrics.Queries.WithLabelValues("map").Inc()
	q = q.Normalized()

	key, err := domain.ResolveProvinceKey(s.snapshot.Attributes())
	if err != nil {
		s.metrics.MapRenders.WithLabelValues("schema_error").Inc()
		s.logger.Error("province key resolution failed", "error", err)
		return render.Artifact{}, err
	}

	summaries, err := domain.SummarizeProvinces(domain.Filter(s.snapshot.Records(), q))
	if errors.Is(err, domain.ErrNoRecords) {
		s.metrics.MapRenders.WithLabelValues("no_data").Inc()
		s.logger.Debug("no records for map filter", "year", q.Year, "province", q.Province, "species_group", q.SpeciesGroup)
		return render.NoData(), nil
	}
	if err != nil {
		return render.Artifact{}, err
	}

	regions := s.snapshot.Regions()
	styled := domain.JoinRegions(regions, key, summaries)
	if missing := domain.UnmatchedProvinces(regions, key, summaries); len(missing) > 0 {
		s.logger.Warn("provinces without a boundary polygon", "key", key, "provinces", missing)
	}

	art, err := render.Map(styled, s.focus(styled, q))
	if err != nil {
		return render.Artifact{}, fmt.Errorf("render map: %w", err)
	}

	s.metrics.MapRenders.WithLabelValues("rendered").Inc()
	s.metrics.UnmatchedRegions.Set(float64(art.Unmatched))
	s.metrics.LastRender.Set(float64(art.GeneratedAt.Unix()))
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return art, nil
}

// focus centers the map on the filtered province when it has a polygon.
func (s *Service) focus(styled []domain.StyledRegion, q domain.Query) render.MapOptions {
	if q.Province == "" {
		return s.mapOpts
	}
	for _, r := range styled {
		if r.Matched && r.Province == q.Province {
			return render.FocusOn(r.Region, s.mapOpts)
		}
	}
	return s.mapOpts
}

// PopulationChart writes the population trend chart for q as a PNG.
func (s *Service) PopulationChart(w io.Writer, q domain.Query) error {
	s.metrics.Queries.WithLabelValues("chart").Inc()
	rows := domain.PopulationRows(domain.Filter(s.snapshot.Records(), q.Normalized()))
	return render.PopulationChart(w, rows)
}

// WriteStatusWorkbook writes the status table as an XLSX workbook.
func (s *Service) WriteStatusWorkbook(w io.Writer) error {
	s.metrics.Queries.WithLabelValues("export").Inc()
	return render.StatusWorkbook(w, domain.StatusRows(s.snapshot.Records()))
}

// Predict classifies a prediction request body. Input problems surface as
// *domain.ClassificationInputError. A failed event publish is logged and
// does not fail the prediction.
func (s *Service) Predict(ctx context.Context, body map[string]any) (domain.Prediction, error) {
	s.metrics.Queries.WithLabelValues("predict").Inc()
	if s.classifier == nil {
		s.metrics.Predictions.WithLabelValues("disabled").Inc()
		return domain.Prediction{}, ErrClassifierDisabled
	}

	features, err := domain.ParseFeatureVector(body)
	if err != nil {
		s.metrics.Predictions.WithLabelValues("input_error").Inc()
		return domain.Prediction{}, err
	}

	label, err := s.classifier.Predict(ctx, features)
	if err != nil {
		var inputErr *domain.ClassificationInputError
		if errors.As(err, &inputErr) {
			s.metrics.Predictions.WithLabelValues("input_error").Inc()
		} else {
			s.metrics.Predictions.WithLabelValues("classifier_error").Inc()
		}
		s.logger.Warn("prediction failed", "error", err, "year", features.Year, "province", features.Province)
		return domain.Prediction{}, err
	}

	prediction := domain.NewPrediction(features, label)
	s.metrics.Predictions.WithLabelValues("success").Inc()
	s.logger.Info("prediction served",
		"id", prediction.ID,
		"label", label,
		"year", features.Year,
		"province", features.Province,
		"species_group", features.SpeciesGroup,
	)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, prediction); err != nil {
			s.logger.Warn("publish prediction event failed", "error", err, "id", prediction.ID)
		} else {
			s.metrics.EventsPublished.Inc()
		}
	}
	return prediction, nil
}
