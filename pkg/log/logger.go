package log

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type tagKey string

const (
	CompositeIDKey tagKey = "composite"
	PatchSetIDKey  tagKey = "patch_set"
	RegistryKey    tagKey = "registry"
)

var tagKeys = []tagKey{CompositeIDKey, PatchSetIDKey, RegistryKey}

var logger = zap.NewNop().Sugar()

// SetLogger replaces the process-wide logger. Passing nil silences logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Sugar()
}

type Loggable interface {
	Ctx() context.Context
}

// WithTag returns a context carrying a tag that is attached to every line
// logged on behalf of it.
func WithTag(ctx context.Context, key tagKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

func ctxFields(l Loggable) []interface{} {
	if l == nil {
		return nil
	}
	ctx := l.Ctx()
	if ctx == nil {
		return nil
	}
	var fields []interface{}
	for _, key := range tagKeys {
		if val := ctx.Value(key); val != nil {
			fields = append(fields, string(key), fmt.Sprint(val))
		}
	}
	return fields
}

func Printf(l Loggable, format string, args ...interface{}) {
	logger.With(ctxFields(l)...).Infof(format, args...)
}

func Debugf(l Loggable, format string, args ...interface{}) {
	logger.With(ctxFields(l)...).Debugf(format, args...)
}
