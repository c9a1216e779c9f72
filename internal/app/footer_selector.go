// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/footer-citations/internal/domain"
	"github.com/jsamuelsen/footer-citations/internal/ports"
)

// DefaultTargetID is the id of the element that receives the citation.
const DefaultTargetID = "footer-citations"

const tracerName = "github.com/jsamuelsen/footer-citations/app"

// ErrIndexOutOfRange reports a random source that drew outside [0, n).
// It is a server fault, not a client one.
var ErrIndexOutOfRange = errors.New("random source returned an index out of range")

// Selection is the outcome of one render.
type Selection struct {
	Index    int
	Citation domain.Citation
	Markup   string
}

// FooterSelector picks one citation at random and writes its markup
// into the target element of a host document. It is safe for concurrent
// use; draws from the random source are serialised.
type FooterSelector struct {
	registry *domain.Registry
	mu       sync.Mutex
	random   ports.RandomSource
	targetID string
	recorder ports.SelectionRecorder
	logger   *slog.Logger
	tracer   trace.Tracer
}

// FooterSelectorConfig contains the dependencies of a FooterSelector.
type FooterSelectorConfig struct {
	// Registry is required.
	Registry *domain.Registry

	// Random defaults to a PCG source seeded by the runtime.
	Random ports.RandomSource

	// TargetID defaults to DefaultTargetID.
	TargetID string

	// Recorder defaults to ports.NopRecorder.
	Recorder ports.SelectionRecorder

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewFooterSelector creates a footer selector.
// Panics if cfg.Registry is nil.
func NewFooterSelector(cfg FooterSelectorConfig) *FooterSelector {
	if cfg.Registry == nil {
		panic("app: FooterSelector requires a Registry")
	}

	random := cfg.Random
	if random == nil {
		random = NewRandomSource(0)
	}

	targetID := cfg.TargetID
	if targetID == "" {
		targetID = DefaultTargetID
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FooterSelector{
		registry: cfg.Registry,
		random:   random,
		targetID: targetID,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "app.FooterSelector")),
		tracer:   otel.Tracer(tracerName),
	}
}

// NewRandomSource returns a PCG-backed random source. A zero seed draws
// the seed from the runtime's default source, so renders are not
// reproducible; any other seed gives a fixed sequence.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not used for security
	}

	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // not used for security
}

// TargetID returns the id of the element written by Render.
func (s *FooterSelector) TargetID() string {
	return s.targetID
}

// Registry returns the citations the selector draws from.
func (s *FooterSelector) Registry() *domain.Registry {
	return s.registry
}

// Pick draws an index uniformly from [0, n).
func (s *FooterSelector) Pick() (int, error) {
	n := s.registry.Len()
	if n == 0 {
		return 0, domain.ErrEmptyRegistry
	}

	s.mu.Lock()
	index := s.random.IntN(n)
	s.mu.Unlock()
	if index < 0 || index >= n {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, n)
	}

	return index, nil
}

// Select picks a citation and formats it without writing it anywhere.
func (s *FooterSelector) Select() (*Selection, error) {
	index, err := s.Pick()
	if err != nil {
		return nil, err
	}

	citation, err := s.registry.At(index)
	if err != nil {
		return nil, err
	}

	return &Selection{
		Index:    index,
		Citation: citation,
		Markup:   citation.Format(),
	}, nil
}

// Render picks a citation and writes its markup as the inner content of
// the target element in doc, replacing any prior content. It is not retried:
// an empty registry or a missing target element is returned as-is.
func (s *FooterSelector) Render(ctx context.Context, doc ports.Document) (*Selection, error) {
	ctx, span := s.tracer.Start(ctx, "FooterSelector.Render",
		trace.WithAttributes(attribute.String("footer.target_id", s.targetID)),
	)
	defer span.End()

	sel, err := s.Select()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "selection failed")
		s.logger.ErrorContext(ctx, "failed to select citation", slog.Any("error", err))

		return nil, fmt.Errorf("selecting citation: %w", err)
	}

	if err := doc.SetInnerHTML(s.targetID, sel.Markup); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		s.logger.ErrorContext(ctx, "failed to write citation",
			slog.String("target_id", s.targetID),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("writing citation: %w", err)
	}

	span.SetAttributes(attribute.Int("footer.citation_index", sel.Index))
	s.recorder.RecordSelection(ctx, sel.Index, sel.Citation.Author.Display())

	s.logger.DebugContext(ctx, "rendered citation",
		slog.Int("index", sel.Index),
		slog.String("author", sel.Citation.Author.Display()),
	)

	return sel, nil
}
