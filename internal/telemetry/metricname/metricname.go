package metricname

const (
	COUNTER_RELAY_REQUESTS             = "genrelay.relay.requests"
	COUNTER_RELAY_SUCCESS              = "genrelay.relay.success"
	COUNTER_RELAY_ERRORS               = "genrelay.relay.errors"
	COUNTER_RELAY_EXTRACTION_FALLBACKS = "genrelay.relay.extraction_fallbacks"
	HISTOGRAM_RELAY_MODEL_LATENCY      = "genrelay.relay.model_latency"

	COUNTER_WEB_RESPONSES = "genrelay.web.responses"
	HISTOGRAM_WEB_LATENCY = "genrelay.web.latency"
)

// Labels lists, per metric, the tag keys a provider can break values down by.
var Labels = map[string][]string{
	COUNTER_RELAY_REQUESTS:             {"operation"},
	COUNTER_RELAY_SUCCESS:              {"operation"},
	COUNTER_RELAY_ERRORS:               {"operation", "kind"},
	COUNTER_RELAY_EXTRACTION_FALLBACKS: {},
	HISTOGRAM_RELAY_MODEL_LATENCY:      {"operation"},
	COUNTER_WEB_RESPONSES:              {"status", "path"},
	HISTOGRAM_WEB_LATENCY:              {"path"},
}
