package relay

import (
	"encoding/json"
	"fmt"

	"github.com/bricks-cloud/genrelay/internal/telemetry"
	"github.com/bricks-cloud/genrelay/internal/telemetry/metricname"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const textPath = "candidates.0.content.parts.0.text"

// ExtractText returns the first part of the first candidate when it holds
// text. Any other shape yields the whole response as indented JSON so the
// caller always has something to display. It never fails.
func ExtractText(log *zap.Logger, resp any) (text string) {
	log.Debug("constructing result")

	defer func() {
		if r := recover(); r != nil {
			log.Error("error extracting text", zap.Any("error", r))
			text = dump(log, resp)
		}
	}()

	bs, err := json.Marshal(resp)
	if err != nil {
		log.Error("error extracting text", zap.Error(err))
		return dump(log, resp)
	}

	result := gjson.GetBytes(bs, textPath)
	if result.Type == gjson.String {
		return result.Str
	}

	telemetry.Incr(metricname.COUNTER_RELAY_EXTRACTION_FALLBACKS, nil, 1)

	return dump(log, resp)
}

func dump(log *zap.Logger, resp any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("error dumping response", zap.Any("error", r))
			out = fmt.Sprintf("%+v", resp)
		}
	}()

	bs, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Error("error dumping response", zap.Error(err))
		return fmt.Sprintf("%+v", resp)
	}

	return string(bs)
}
