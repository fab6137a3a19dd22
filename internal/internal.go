package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Keys of the group an error is logged under.
const (
	ErrKey    = "error"
	MsgKey    = "msg"
	OriginKey = "origin"
	TraceKey  = "trace"
)

type (
	logAttrCtxKeyType struct{}
	AttrFunc          func(a slog.Attr)
)

var logAttrCtxKey logAttrCtxKeyType

func ContextWithLogArgs(ctx context.Context, args ...any) context.Context {

	am := make(map[string]slog.Attr)
	for k, a := range logAttrsFromContext(ctx) {
		am[k] = a
	}
	ParseLogArgs(args, func(a slog.Attr) {
		am[a.Key] = a
	})

	return context.WithValue(
		ctx,
		logAttrCtxKey,
		am,
	)
}

// ParseLogArgs converts args to attributes and calls f once per key.
// Later arguments win over earlier ones with the same key.
func ParseLogArgs(args []any, f AttrFunc) {

	am := make(map[string]slog.Attr)
	for len(args) > 0 {
		var attrs []slog.Attr
		attrs, args = argsToAttr(args)
		for _, a := range attrs {
			if isEmptyGroup(a.Value) {
				continue
			} else if a.Key == "" {
				if a.Value.Kind() == slog.KindGroup {
					for _, ga := range a.Value.Group() {
						am[ga.Key] = ga
					}
				} else {
					panic(fmt.Sprintf("invalid attr, non-group value without a key: %v", a.Value))
				}
			} else {
				am[a.Key] = a
			}
		}
	}

	for _, a := range am {
		f(a)
	}
}

func MapValues[K comparable, V any](m map[K]V) []V {
	var ret []V
	for _, a := range m {
		ret = append(ret, a)
	}
	return ret
}

const badKey = "!BADKEY"

func argsToAttr(args []any) ([]slog.Attr, []any) {
	switch x := args[0].(type) {
	case string:
		if len(args) == 1 {
			return []slog.Attr{slog.String(badKey, x)}, nil
		}
		return []slog.Attr{slog.Any(x, args[1])}, args[2:]
	case context.Context:
		return MapValues(logAttrsFromContext(x)), args[1:]
	case error:
		return logAttrsFromError(x), args[1:]
	case slog.Attr:
		return []slog.Attr{x}, args[1:]
	default:
		return []slog.Attr{slog.Any(badKey, x)}, args[1:]
	}
}

func isEmptyGroup(v slog.Value) bool {
	if v.Kind() != slog.KindGroup {
		return false
	}
	return len(v.Group()) == 0
}

// logAttrsFromError returns the attributes of the first slog.LogValuer in
// err's chain, with the message replaced by the message of err itself.
// Errors without one, or whose LogValue is not a group, are logged by
// message only.
func logAttrsFromError(err error) []slog.Attr {
	msgOnly := []slog.Attr{
		slog.Group(ErrKey, slog.String(MsgKey, err.Error())),
	}

	var lv slog.LogValuer
	if !errors.As(err, &lv) {
		return msgOnly
	}

	v := lv.LogValue().Resolve()
	if v.Kind() != slog.KindGroup {
		return msgOnly
	}

	attrs := slices.Clone(v.Group())
	for i, a := range attrs {
		if a.Key == ErrKey && a.Value.Kind() == slog.KindGroup {
			attrs[i] = withMsg(a, err.Error())
		}
	}
	return attrs
}

func withMsg(a slog.Attr, msg string) slog.Attr {
	group := slices.Clone(a.Value.Group())
	for i := range group {
		if group[i].Key == MsgKey {
			group[i] = slog.String(MsgKey, msg)
		}
	}
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(group...)}
}

func logAttrsFromContext(ctx context.Context) map[string]slog.Attr {
	if attr, ok := ctx.Value(logAttrCtxKey).(map[string]slog.Attr); ok {
		return attr
	}
	return make(map[string]slog.Attr)
}
