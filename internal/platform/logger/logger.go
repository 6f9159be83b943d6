// Package logger owns the process zerolog root and the request scoped children derived from it
//
// Handlers log through C(ctx) so every line carries the request id, org slug and viewer,
// long lived components log through Named
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"orgstats/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project wide logger type
type Logger = zerolog.Logger

// Options shapes the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* with the raw reader, config logs through this package so it cannot be used
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(env.Get("LEVEL", "info")),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", "orgstats-api"),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init installs the root logger built from opt, only the first call has an effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, built from the environment when Init was never called
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		fields = fields.Str("service", opt.Service)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields = fields.Str("go_version", bi.GoVersion)
	}
	for k, v := range opt.StaticFields {
		fields = fields.Str(k, v)
	}
	if opt.WithCaller {
		fields = fields.Caller()
	}

	l := fields.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel accepts zerolog level names plus "warning", anything else is info
func parseLevel(s string) zerolog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey string

// request scoped fields in the order C writes them
var scopedKeys = []ctxKey{"request_id", "org_slug", "user_id"}

// WithRequest records the request id for C
func WithRequest(ctx context.Context, reqID string) context.Context {
	return withField(ctx, "request_id", reqID)
}

// WithOrg records the organization slug and viewer for C, empty values are skipped
func WithOrg(ctx context.Context, orgSlug, userID string) context.Context {
	return withField(withField(ctx, "org_slug", orgSlug), "user_id", userID)
}

func withField(ctx context.Context, k ctxKey, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

// C returns a root child carrying the request scoped fields found on ctx
func C(ctx context.Context) *Logger {
	fields := Get().With()
	for _, k := range scopedKeys {
		if v, _ := ctx.Value(k).(string); v != "" {
			fields = fields.Str(string(k), v)
		}
	}
	l := fields.Logger()
	return &l
}

// Named returns a root child with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
