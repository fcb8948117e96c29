package prometheus

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Config struct {
	Enabled bool
	Port    string
}

type Client struct {
	Config           Config
	CounterMetrics   map[string]*prometheus.CounterVec
	HistogramMetrics map[string]*prometheus.HistogramVec

	registry *prometheus.Registry
	server   *http.Server
}

func NewClient(cfg Config) *Client {
	c := &Client{
		Config:           cfg,
		CounterMetrics:   make(map[string]*prometheus.CounterVec),
		HistogramMetrics: make(map[string]*prometheus.HistogramVec),
		registry:         prometheus.NewRegistry(),
	}

	c.initMetrics()

	return c
}

// Init registers the relay metrics and, when enabled, serves them on
// :Port/metrics in the background.
func Init(cfg Config, log *zap.Logger) (*Client, error) {
	c := NewClient(cfg)
	if !cfg.Enabled {
		return c, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	c.server = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Sugar().Infof("prometheus metrics listening at %s", cfg.Port)
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Sugar().Errorf("error prometheus server listening: %v", err)
		}
	}()

	return c, nil
}

func (c *Client) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Client) Incr(name string, tags []string, rate float64) {
	if c == nil {
		return
	}

	counterMetric, exists := c.CounterMetrics[name]
	if !exists {
		return
	}

	counter, err := counterMetric.GetMetricWith(toLabels(name, tags))
	if err != nil {
		return
	}

	counter.Inc()
}

func (c *Client) Timing(name string, value time.Duration, tags []string, rate float64) {
	if c == nil {
		return
	}

	histogramMetric, exists := c.HistogramMetrics[name]
	if !exists {
		return
	}

	observer, err := histogramMetric.GetMetricWith(toLabels(name, tags))
	if err != nil {
		return
	}

	observer.Observe(value.Seconds())
}

func (c *Client) Shutdown(ctx context.Context) error {
	if c == nil || c.server == nil {
		return nil
	}

	return c.server.Shutdown(ctx)
}
