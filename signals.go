package garnish

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalLoadStart      = capitan.NewSignal("garnish.load.start", "Document decode beginning")
	SignalLoadComplete   = capitan.NewSignal("garnish.load.complete", "Document decode finished")
	SignalDumpStart      = capitan.NewSignal("garnish.dump.start", "Document encode beginning")
	SignalDumpComplete   = capitan.NewSignal("garnish.dump.complete", "Document encode finished")
	SignalConstructError = capitan.NewSignal("garnish.construct.error", "Tagged scalar construction failed")
)

// Keys for typed event data.
var (
	KeyKind     = capitan.NewStringKey("kind")
	KeyTag      = capitan.NewStringKey("tag")
	KeySize     = capitan.NewIntKey("size")
	KeyLine     = capitan.NewIntKey("line")
	KeyColumn   = capitan.NewIntKey("column")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitLoadStart emits an event when a decode begins.
func emitLoadStart(ctx context.Context, size int) {
	capitan.Emit(ctx, SignalLoadStart,
		KeySize.Field(size),
	)
}

// emitLoadComplete emits an event when a decode finishes.
func emitLoadComplete(ctx context.Context, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalLoadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalLoadComplete, fields...)
	}
}

// emitDumpStart emits an event when an encode begins.
func emitDumpStart(ctx context.Context) {
	capitan.Emit(ctx, SignalDumpStart)
}

// emitDumpComplete emits an event when an encode finishes.
func emitDumpComplete(ctx context.Context, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDumpComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDumpComplete, fields...)
	}
}

// emitConstructError emits an event when a tagged scalar fails to construct.
func emitConstructError(ctx context.Context, kind, tag string, line, column int, err error) {
	capitan.Error(ctx, SignalConstructError,
		KeyKind.Field(kind),
		KeyTag.Field(tag),
		KeyLine.Field(line),
		KeyColumn.Field(column),
		KeyError.Field(err),
	)
}
