package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	prometheusModels "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	provider := NewPrometheusProvider()
	server := NewServer("12345", provider.Handler(), false)
	server.Start()
	time.Sleep(time.Second * 1)
	defer server.Stop()

	t.Run("Should store metrics for requests duration", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.httpRequestsDuration.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		require.Equal(t, 0.0, m.Histogram.GetSampleSum())
		provider.ObserveHTTPRequestDuration("handler", "method", "200", 1)
		data, err = provider.httpRequestsDuration.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 1, m.Histogram.GetSampleSum(), 0.001)
	})

	t.Run("Should store metrics for webhook requests", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.webhookEvents.GetMetricWithLabelValues("test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseWebhookRequest("test")
		data, err = provider.webhookEvents.GetMetricWithLabelValues("test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for github requests duration", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.githubRequests.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		require.Equal(t, 0.0, m.Histogram.GetSampleSum())
		provider.ObserveGithubRequestDuration("handler", "method", "200", 1)
		data, err = provider.githubRequests.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 1, m.Histogram.GetSampleSum(), 0.001)
	})

	t.Run("Should store metrics for github cache", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.githubCacheHits.GetMetricWithLabelValues("GET", "/test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseGithubCacheHits("GET", "/test")
		data, err = provider.githubCacheHits.GetMetricWithLabelValues("GET", "/test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())

		data, err = provider.githubCacheMisses.GetMetricWithLabelValues("GET", "/test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseGithubCacheMisses("GET", "/test")
		data, err = provider.githubCacheMisses.GetMetricWithLabelValues("GET", "/test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for cron tasks", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.cronTasksDuration.GetMetricWith(prometheus.Labels{"name": "mirror_issues"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		provider.ObserveCronTaskDuration("mirror_issues", 2)
		data, err = provider.cronTasksDuration.GetMetricWith(prometheus.Labels{"name": "mirror_issues"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 2, m.Histogram.GetSampleSum(), 0.001)

		counterData, err := provider.cronTasksErrors.GetMetricWithLabelValues("mirror_issues")
		require.NoError(t, err)
		require.NoError(t, counterData.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseCronTaskErrors("mirror_issues")
		counterData, err = provider.cronTasksErrors.GetMetricWithLabelValues("mirror_issues")
		require.NoError(t, err)
		require.NoError(t, counterData.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for triage runs", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.triageRunsDuration.GetMetricWith(prometheus.Labels{"outcome": "completed"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		provider.ObserveTriageRunDuration("completed", 3)
		data, err = provider.triageRunsDuration.GetMetricWith(prometheus.Labels{"outcome": "completed"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 3, m.Histogram.GetSampleSum(), 0.001)

		counterData, err := provider.triageStageErrors.GetMetricWithLabelValues("assessment")
		require.NoError(t, err)
		require.NoError(t, counterData.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseTriageStageErrors("assessment")
		counterData, err = provider.triageStageErrors.GetMetricWithLabelValues("assessment")
		require.NoError(t, err)
		require.NoError(t, counterData.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})
}
