// README: Generation orchestrator; prompt, model call, extraction and validation with mock fallback on any failure.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"voyage/internal/ai"
	"voyage/internal/metrics"
	"voyage/internal/modules/itinerary"
)

type Source string

const (
	SourceLLM   Source = "llm"
	SourceCache Source = "cache"
	SourceMock  Source = "mock"
)

// FallbackKind says why the mock was used instead of the model answer.
type FallbackKind string

const (
	FallbackConfigurationMissing FallbackKind = "ConfigurationMissing"
	FallbackNetworkFailure       FallbackKind = "NetworkFailure"
	FallbackHTTPError            FallbackKind = "HttpError"
	FallbackMalformedJSON        FallbackKind = "MalformedJson"
	FallbackFieldViolation       FallbackKind = "FieldViolation"
)

// Fallback is advisory. Status is set for HttpError, Path for FieldViolation.
type Fallback struct {
	Kind    FallbackKind `json:"kind"`
	Status  int          `json:"status,omitempty"`
	Path    string       `json:"path,omitempty"`
	Message string       `json:"message"`
}

type Result struct {
	Itinerary itinerary.Itinerary `json:"itinerary"`
	Source    Source              `json:"source"`
	Fallback  *Fallback           `json:"fallback,omitempty"`
}

// ItineraryCache holds validated model answers keyed by prompt.
type ItineraryCache interface {
	Get(ctx context.Context, prompt string) (string, bool, error)
	Put(ctx context.Context, prompt string, it itinerary.Itinerary) error
}

// ItineraryPlanner runs each stage once; there are no retries anywhere in the chain.
type ItineraryPlanner struct {
	client  ai.Client
	cache   ItineraryCache
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewItineraryPlanner accepts a nil client (always mock) and a nil cache.
func NewItineraryPlanner(client ai.Client, cache ItineraryCache, m *metrics.Metrics, log zerolog.Logger) *ItineraryPlanner {
	return &ItineraryPlanner{client: client, cache: cache, metrics: m, log: log}
}

// Configured reports whether a model client is wired in.
func (p *ItineraryPlanner) Configured() bool { return p.client != nil }

// Provider names the wired model backend, or "" when running mock-only.
func (p *ItineraryPlanner) Provider() string {
	if p.client == nil {
		return ""
	}
	return p.client.Provider()
}

// Generate returns an itinerary for req. The only error is itinerary.ErrInvalidRequest;
// every model-side failure is absorbed into a mock result carrying a Fallback.
func (p *ItineraryPlanner) Generate(ctx context.Context, req itinerary.TravelRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := p.generate(ctx, req)
	p.metrics.ObserveGeneration(string(res.Source), time.Since(start))

	if res.Fallback != nil {
		p.metrics.ObserveFallback(string(res.Fallback.Kind))
		p.log.Warn().
			Str("kind", string(res.Fallback.Kind)).
			Int("status", res.Fallback.Status).
			Str("path", res.Fallback.Path).
			Str("reason", res.Fallback.Message).
			Str("destination", req.Destination).
			Msg("itinerary fell back to mock")
	} else {
		p.log.Info().
			Str("source", string(res.Source)).
			Str("destination", req.Destination).
			Int("days", len(res.Itinerary.DayPlans)).
			Msg("itinerary generated")
	}
	return res, nil
}

func (p *ItineraryPlanner) generate(ctx context.Context, req itinerary.TravelRequest) Result {
	if p.client == nil {
		return mockResult(req, fallbackFor(ai.ErrConfigurationMissing))
	}

	prompt := itinerary.BuildPrompt(req)
	if it, ok := p.fromCache(ctx, prompt); ok {
		return Result{Itinerary: it, Source: SourceCache}
	}

	completion, err := p.client.Complete(ctx, prompt)
	if err != nil {
		return mockResult(req, fallbackFor(err))
	}
	if completion != nil {
		p.metrics.ObserveTokens(p.client.Provider(), completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	candidate, ok := ai.ExtractJSON(completion)
	if !ok {
		return mockResult(req, &Fallback{Kind: FallbackMalformedJSON, Message: "completion carried no content"})
	}

	it, err := itinerary.Validate(candidate)
	if err != nil {
		return mockResult(req, fallbackFor(err))
	}

	p.toCache(ctx, prompt, it)
	return Result{Itinerary: it, Source: SourceLLM}
}

// fromCache only trusts entries that still pass Validate.
func (p *ItineraryPlanner) fromCache(ctx context.Context, prompt string) (itinerary.Itinerary, bool) {
	if p.cache == nil {
		return itinerary.Itinerary{}, false
	}
	raw, ok, err := p.cache.Get(ctx, prompt)
	if err != nil {
		p.log.Warn().Err(err).Msg("itinerary cache read failed")
		return itinerary.Itinerary{}, false
	}
	if !ok {
		return itinerary.Itinerary{}, false
	}
	it, err := itinerary.Validate(raw)
	if err != nil {
		p.log.Warn().Err(err).Msg("discarding invalid cached itinerary")
		return itinerary.Itinerary{}, false
	}
	return it, true
}

func (p *ItineraryPlanner) toCache(ctx context.Context, prompt string, it itinerary.Itinerary) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Put(ctx, prompt, it); err != nil {
		p.log.Warn().Err(err).Msg("itinerary cache write failed")
	}
}

func mockResult(req itinerary.TravelRequest, fb *Fallback) Result {
	return Result{Itinerary: itinerary.MockItinerary(req), Source: SourceMock, Fallback: fb}
}

// fallbackFor maps a client, extractor or validator error onto the fallback taxonomy.
func fallbackFor(err error) *Fallback {
	fb := &Fallback{Message: err.Error()}

	var httpErr *ai.HTTPError
	var fieldErr *itinerary.FieldError
	switch {
	case errors.Is(err, ai.ErrConfigurationMissing):
		fb.Kind = FallbackConfigurationMissing
	case errors.As(err, &httpErr):
		fb.Kind = FallbackHTTPError
		fb.Status = httpErr.Status
	case errors.As(err, &fieldErr):
		fb.Kind = FallbackFieldViolation
		fb.Path = fieldErr.Path
	case errors.Is(err, itinerary.ErrMalformedJSON):
		fb.Kind = FallbackMalformedJSON
	default:
		fb.Kind = FallbackNetworkFailure
	}
	return fb
}
