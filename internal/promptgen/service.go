package promptgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultTemperature = float32(0.7)
)

// Call is the single upstream request made per generation.
type Call struct {
	Model             string
	SystemInstruction string
	UserMessage       string
	Schema            OutputSchema
	Temperature       float32
}

// Caller performs the network call and returns the raw JSON text.
type Caller interface {
	GenerateJSON(ctx context.Context, call Call) (string, error)
}

// Recorder observes finished generations. Outcome is "ok", "upstream_error"
// or "decode_error".
type Recorder interface {
	ObserveGeneration(mode Mode, style Style, outcome string, d time.Duration)
}

type Request struct {
	Idea        string
	Style       Style
	AspectRatio AspectRatio
	Mode        Mode
}

type Result struct {
	// Idea is the idea actually sent, which differs from the request when
	// the request idea was empty.
	Idea   string         `json:"idea"`
	Prompt PromptResponse `json:"result"`
}

type Options struct {
	Caller     Caller
	Model      string
	Logger     *slog.Logger
	Recorder   Recorder
	IdeaPicker func() string
}

type Service struct {
	caller   Caller
	model    string
	logger   *slog.Logger
	recorder Recorder
	pickIdea func() string
}

func NewService(opts Options) (*Service, error) {
	if opts.Caller == nil {
		return nil, errors.New("caller is required")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pick := opts.IdeaPicker
	if pick == nil {
		pick = RandomIdea
	}

	return &Service{
		caller:   opts.Caller,
		model:    model,
		logger:   logger,
		recorder: opts.Recorder,
		pickIdea: pick,
	}, nil
}

// Generate runs compose, call and validate for one request. Every failure is
// returned as *GenerationError carrying FailureMessage.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		idea = s.pickIdea()
	}
	style := ParseStyle(string(req.Style))
	ratio := req.AspectRatio
	if !ratio.Valid() {
		ratio = AspectSquare
	}
	mode := ParseMode(string(req.Mode))

	ctx, span := otel.Tracer("ai-prompt-studio/promptgen").Start(ctx, "promptgen.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("prompt.style", string(style)),
		attribute.String("prompt.aspect_ratio", string(ratio)),
		attribute.String("prompt.mode", string(mode)),
		attribute.String("prompt.model", s.model),
	)

	comp := Compose(idea, style, ratio, mode)

	raw, err := s.caller.GenerateJSON(ctx, Call{
		Model:             s.model,
		SystemInstruction: comp.SystemInstruction,
		UserMessage:       comp.UserMessage,
		Schema:            comp.Schema,
		Temperature:       DefaultTemperature,
	})
	if err == nil && strings.TrimSpace(raw) == "" {
		err = errors.New("no response from model")
	}
	if err != nil {
		return Result{}, s.fail(span, mode, style, start, ErrUpstream, err)
	}

	resp, err := Validate(raw, mode)
	if err != nil {
		return Result{}, s.fail(span, mode, style, start, ErrDecode, err)
	}

	s.observe(mode, style, "ok", time.Since(start))
	s.logger.Debug("prompt generated", "style", style, "mode", mode, "dur_ms", time.Since(start).Milliseconds())
	return Result{Idea: idea, Prompt: resp}, nil
}

func (s *Service) fail(span trace.Span, mode Mode, style Style, start time.Time, kind error, cause error) error {
	outcome := "upstream_error"
	if errors.Is(kind, ErrDecode) {
		outcome = "decode_error"
	}

	span.RecordError(cause)
	span.SetStatus(codes.Error, outcome)
	s.observe(mode, style, outcome, time.Since(start))
	s.logger.Error("prompt generation failed", "outcome", outcome, "style", style, "mode", mode, "err", cause)

	return &GenerationError{Kind: kind, Cause: cause}
}

func (s *Service) observe(mode Mode, style Style, outcome string, d time.Duration) {
	if s.recorder != nil {
		s.recorder.ObserveGeneration(mode, style, outcome, d)
	}
}
