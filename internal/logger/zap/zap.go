package zap

import (
	"encoding/json"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	ProductionMode = "production"
	prefix         = "[GENRELAY]"
)

type prependEncoder struct {
	// embedded encoder writes the entry body after the prefix
	zapcore.Encoder
	cfg  zapcore.EncoderConfig
	pool buffer.Pool
}

func (e *prependEncoder) Clone() zapcore.Encoder {
	return &prependEncoder{
		Encoder: e.Encoder.Clone(),
		pool:    buffer.NewPool(),
		cfg:     e.cfg,
	}
}

func (e *prependEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := e.pool.Get()
	blue := color.New(color.BgBlue)
	red := color.New(color.BgRed)

	coloredPrefix := blue.Sprint(prefix)
	if entry.Level > zapcore.InfoLevel {
		coloredPrefix = red.Sprint(prefix)
	}

	buf.AppendString(coloredPrefix)
	buf.AppendString(" ")
	buf.AppendString(levelPrefix(entry.Level))
	buf.AppendString(" | ")
	buf.AppendString(entry.Time.Format(time.RFC3339))
	buf.AppendString(" | ")

	consolebuf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer consolebuf.Free()

	_, err = buf.Write(consolebuf.Bytes())
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func levelPrefix(lvl zapcore.Level) string {
	switch lvl {
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.InfoLevel:
		return "INFO"
	case zapcore.WarnLevel:
		return "WARN"
	case zapcore.ErrorLevel:
		return "ERROR"
	case zapcore.FatalLevel:
		return "FATAL"
	}
	return ""
}

func NewLogger(mode string) *zap.Logger {
	rawJSON := []byte(`{
		"level": "debug",
		"encoding": "json",
		"outputPaths": ["stdout"],
		"errorOutputPaths": ["stderr"],
		"encoderConfig": {
		  "messageKey": "message",
		  "levelKey": "level",
		  "levelEncoder": "lowercase"
		}
	  }`)

	var cfg zap.Config

	if err := json.Unmarshal(rawJSON, &cfg); err != nil {
		panic(err)
	}

	if mode == ProductionMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		return zap.Must(cfg.Build())
	}

	return newConsoleLogger(cfg.EncoderConfig, zapcore.AddSync(colorable.NewColorableStdout()))
}

func newConsoleLogger(encCfg zapcore.EncoderConfig, ws zapcore.WriteSyncer) *zap.Logger {
	encCfg.LevelKey = zapcore.OmitKey

	enc := &prependEncoder{
		Encoder: zapcore.NewConsoleEncoder(encCfg),
		pool:    buffer.NewPool(),
		cfg:     encCfg,
	}

	return zap.New(zapcore.NewCore(enc, ws, zapcore.DebugLevel))
}

// NewWriterLogger builds the dev console logger on top of w; tests use it
// to capture output.
func NewWriterLogger(w io.Writer) *zap.Logger {
	return newConsoleLogger(zapcore.EncoderConfig{
		MessageKey:  "message",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}, zapcore.AddSync(w))
}
