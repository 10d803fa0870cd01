// Package diaglog reports builder diagnostics through a zap logger.
package diaglog

import (
	"go.uber.org/zap"

	lsxerrors "github.com/jacoelho/lsx/errors"
)

// Reporter logs dropped attributes at warn level and unresolved type codes at debug.
type Reporter struct {
	log *zap.Logger
}

// New returns a Reporter writing to log. A nil log discards reports.
func New(log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{log: log.Named("lsx")}
}

// Dropped implements lsx.Diagnostics.
func (r *Reporter) Dropped(node, attribute string, err error) {
	fields := []zap.Field{
		zap.String("node", node),
		zap.String("attribute", attribute),
		zap.Error(err),
	}
	if decodeErr, ok := lsxerrors.AsDecodeError(err); ok {
		fields = append(fields,
			zap.String("code", string(decodeErr.Code)),
			zap.String("type", decodeErr.Type),
			zap.String("value", decodeErr.Value),
		)
	}
	r.log.Warn("Attribute dropped", fields...)
}

// Unresolved implements lsx.Diagnostics.
func (r *Reporter) Unresolved(node, attribute, typ string) {
	r.log.Debug("Unresolved type code, keeping raw value",
		zap.String("node", node),
		zap.String("attribute", attribute),
		zap.String("type", typ),
	)
}

// NewLogger builds the command-line logger: development config at debug level when
// verbose, production config at warn level otherwise.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
