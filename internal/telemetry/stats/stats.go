package stats

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
)

type Config struct {
	Enabled bool
	Address string
}

type Client struct {
	config  Config
	statsdc statsd.ClientInterface
}

func InitializeClient(cfg Config) (*Client, error) {
	if !cfg.Enabled {
		return &Client{config: cfg}, nil
	}

	statsdc, err := statsd.New(cfg.Address)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:  cfg,
		statsdc: statsdc,
	}, nil
}

func newWithStatsd(cfg Config, sc statsd.ClientInterface) *Client {
	return &Client{
		config:  cfg,
		statsdc: sc,
	}
}

func (c *Client) Incr(name string, tags []string, rate float64) {
	if c != nil && c.config.Enabled && c.statsdc != nil {
		c.statsdc.Incr(name, tags, rate)
	}
}

func (c *Client) Timing(name string, value time.Duration, tags []string, rate float64) {
	if c != nil && c.config.Enabled && c.statsdc != nil {
		c.statsdc.Timing(name, value, tags, rate)
	}
}

func (c *Client) Close() error {
	if c == nil || c.statsdc == nil {
		return nil
	}

	return c.statsdc.Close()
}
