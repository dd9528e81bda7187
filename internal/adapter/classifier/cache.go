package classifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/observability"
)

// CachedClassifier wraps a Classifier with a TTL cache keyed by the full
// feature vector.
type CachedClassifier struct {
	inner   domain.Classifier
	cache   *cache.Cache
	metrics *observability.Metrics
}

// NewCachedClassifier creates a cache decorator around a classifier.
func NewCachedClassifier(inner domain.Classifier, ttl time.Duration, metrics *observability.Metrics) *CachedClassifier {
	return &CachedClassifier{
		inner:   inner,
		cache:   cache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedClassifier) Predict(ctx context.Context, features domain.FeatureVector) (string, error) {
	key, err := cacheKey(features)
	if err != nil {
		return c.inner.Predict(ctx, features)
	}
	if label, ok := c.cache.Get(key); ok {
		c.metrics.ClassifierCache.WithLabelValues("hit").Inc()
		return label.(string), nil
	}
	c.metrics.ClassifierCache.WithLabelValues("miss").Inc()

	label, err := c.inner.Predict(ctx, features)
	if err != nil {
		return "", err
	}
	c.cache.Set(key, label, cache.DefaultExpiration)
	return label, nil
}

func cacheKey(features domain.FeatureVector) (string, error) {
	b, err := json.Marshal(features)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
