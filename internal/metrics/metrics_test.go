package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(RecommendationResults.WithLabelValues("overlap"))
	RecommendationResults.WithLabelValues("overlap").Add(3)
	assert.Equal(t, before+3, testutil.ToFloat64(RecommendationResults.WithLabelValues("overlap")))

	CorpusSize.Set(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(CorpusSize))
}
