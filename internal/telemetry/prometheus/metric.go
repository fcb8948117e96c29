package prometheus

import (
	"strings"

	"github.com/bricks-cloud/genrelay/internal/telemetry/metricname"
	"github.com/prometheus/client_golang/prometheus"
)

func toPrometheusName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

func (c *Client) initMetrics() {
	for _, name := range []string{
		metricname.COUNTER_RELAY_REQUESTS,
		metricname.COUNTER_RELAY_SUCCESS,
		metricname.COUNTER_RELAY_ERRORS,
		metricname.COUNTER_RELAY_EXTRACTION_FALLBACKS,
		metricname.COUNTER_WEB_RESPONSES,
	} {
		c.CounterMetrics[name] = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: toPrometheusName(name),
			},
			metricname.Labels[name],
		)
		c.registry.MustRegister(c.CounterMetrics[name])
	}

	for _, name := range []string{
		metricname.HISTOGRAM_RELAY_MODEL_LATENCY,
		metricname.HISTOGRAM_WEB_LATENCY,
	} {
		c.HistogramMetrics[name] = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    toPrometheusName(name) + "_seconds",
				Buckets: prometheus.DefBuckets,
			},
			metricname.Labels[name],
		)
		c.registry.MustRegister(c.HistogramMetrics[name])
	}
}

// toLabels turns statsd style "key:value" tags into prometheus labels,
// keeping only the keys registered for the metric and blanking the rest.
func toLabels(name string, tags []string) prometheus.Labels {
	labels := prometheus.Labels{}
	for _, key := range metricname.Labels[name] {
		labels[key] = ""
	}

	for _, tag := range tags {
		key, value, found := strings.Cut(tag, ":")
		if !found {
			continue
		}

		if _, ok := labels[key]; ok {
			labels[key] = value
		}
	}

	return labels
}
