package forecast

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/salespipe/forecast-engine/internal/models"
	"github.com/salespipe/forecast-engine/internal/series"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	e, err := New(cfg, logger)
	require.NoError(t, err)
	return e
}

func makeSeries(values ...float64) []models.DataPoint {
	points := make([]models.DataPoint, len(values))
	for i, v := range values {
		points[i] = models.DataPoint{Value: v}
	}
	return points
}

func makeDatedSeries(start time.Time, values ...float64) []models.DataPoint {
	points := make([]models.DataPoint, len(values))
	for i, v := range values {
		points[i] = models.DataPoint{Value: v, Timestamp: start.AddDate(0, i, 0)}
	}
	return points
}

func randomSeries(n int, seed int64) []models.DataPoint {
	rng := rand.New(rand.NewSource(seed))
	points := make([]models.DataPoint, n)
	for i := range points {
		points[i] = models.DataPoint{Value: 100 + rng.Float64()*100}
	}
	return points
}

func numberRecords(values ...float64) []series.Record {
	records := make([]series.Record, len(values))
	for i, v := range values {
		records[i] = series.Number(v)
	}
	return records
}
