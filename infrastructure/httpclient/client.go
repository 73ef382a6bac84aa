// Package httpclient builds the outbound HTTP clients used for third-party APIs.
// Each upstream gets its own circuit breaker so one dead API cannot slow the rest.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"portfolio-backend/pkg/observability"
)

// Outcome labels recorded per call
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeServerError = "server_error"
	OutcomeRejected    = "circuit_open"
)

// BreakerObserver is told about breaker state transitions
type BreakerObserver interface {
	SetBreakerState(service string, state float64)
}

// Options configures every client a Factory produces
type Options struct {
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
	Recorder         observability.UpstreamRecorder
	Breakers         BreakerObserver
	Logger           *zap.Logger
	Base             http.RoundTripper

	// TolerateServerErrors keeps 5xx responses from counting against the breaker,
	// for upstreams whose error statuses are an expected answer
	TolerateServerErrors bool
}

// ClientOption adjusts the options for a single client
type ClientOption func(*Options)

// TolerateServerErrors returns 5xx responses to the caller without tripping the breaker
func TolerateServerErrors() ClientOption {
	return func(o *Options) { o.TolerateServerErrors = true }
}

// Factory hands out one client per upstream service name
type Factory struct {
	opts Options
}

// NewFactory applies defaults to opts
func NewFactory(opts Options) *Factory {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	if opts.Base == nil {
		opts.Base = http.DefaultTransport
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Factory{opts: opts}
}

// Client returns a new client for service
func (f *Factory) Client(service string, options ...ClientOption) *http.Client {
	opts := f.opts
	for _, o := range options {
		o(&opts)
	}
	return &http.Client{Transport: NewTransport(service, opts)}
}

// Transport is an http.RoundTripper guarded by a circuit breaker
type Transport struct {
	service     string
	base        http.RoundTripper
	breaker     *gobreaker.CircuitBreaker
	recorder    observability.UpstreamRecorder
	tracer      trace.Tracer
	timeout     time.Duration
	countStatus bool
}

var errServerStatus = errors.New("upstream server error")

// callerGone wraps a transport error caused by the caller's own context. The upstream
// was not at fault, so the breaker does not count it.
type callerGone struct{ err error }

func (e *callerGone) Error() string { return e.err.Error() }
func (e *callerGone) Unwrap() error { return e.err }

func breakerSuccess(err error) bool {
	var gone *callerGone
	return err == nil || errors.As(err, &gone)
}

// NewTransport builds the breaker-guarded transport for service
func NewTransport(service string, opts Options) *Transport {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        service,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("service", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if opts.Breakers != nil {
				opts.Breakers.SetBreakerState(name, stateValue(to))
			}
		},
	}

	return &Transport{
		service:     service,
		base:        base,
		breaker:     gobreaker.NewCircuitBreaker(settings),
		recorder:    opts.Recorder,
		tracer:      otel.Tracer("portfolio-backend/httpclient"),
		timeout:     opts.Timeout,
		countStatus: !opts.TolerateServerErrors,
	}
}

// RoundTrip implements http.RoundTripper. 5xx responses count as breaker failures
// unless the client tolerates them, and are always returned to the caller. Errors from
// a cancelled or expired request context never count. The timeout lives here rather
// than on http.Client so an upstream hang can be told apart from a caller leaving.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), t.service+" "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("peer.service", t.service),
			attribute.String("http.method", req.Method),
			attribute.String("http.host", req.URL.Host),
			attribute.String("http.target", req.URL.Path),
		),
	)
	defer span.End()

	cancel := context.CancelFunc(func() {})
	if t.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
	}

	start := time.Now()
	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.base.RoundTrip(req.WithContext(ctx))
		if err != nil {
			if req.Context().Err() != nil {
				return nil, &callerGone{err: err}
			}
			return nil, err
		}
		if t.countStatus && resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	elapsed := time.Since(start)

	resp, _ := result.(*http.Response)
	outcome := OutcomeSuccess
	var gone *callerGone
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = OutcomeRejected
		err = fmt.Errorf("%s unavailable: %w", t.service, err)
	case errors.Is(err, errServerStatus):
		outcome = OutcomeServerError
		err = nil
	case errors.As(err, &gone):
		outcome = OutcomeError
		err = gone.err
	case err != nil:
		outcome = OutcomeError
	case resp != nil && resp.StatusCode >= http.StatusInternalServerError:
		outcome = OutcomeServerError
	}

	if t.recorder != nil {
		t.recorder.RecordUpstream(t.service, outcome, elapsed)
	}
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		cancel()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	if outcome == OutcomeServerError {
		span.SetStatus(codes.Error, resp.Status)
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose keeps the timeout running while the caller reads the body
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// State reports the breaker state
func (t *Transport) State() gobreaker.State {
	return t.breaker.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
