package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"ai-prompt-studio/internal/promptgen"
)

//go:embed static/*
var staticFS embed.FS

const maxBodyBytes = 64 << 10

// Generator is the slice of promptgen.Service the server needs.
type Generator interface {
	Generate(ctx context.Context, req promptgen.Request) (promptgen.Result, error)
}

// HTTPObserver counts served requests; *metrics.Metrics satisfies it.
type HTTPObserver interface {
	ObserveHTTP(route string, status int)
}

type Options struct {
	Generator      Generator
	Logger         *slog.Logger
	Observer       HTTPObserver
	Metrics        http.Handler
	RequestTimeout time.Duration
	IdeaPicker     func() string
}

type Server struct {
	gen      Generator
	logger   *slog.Logger
	observer HTTPObserver
	metrics  http.Handler
	timeout  time.Duration
	pickIdea func() string
	validate *validator.Validate
}

type apiError struct {
	Error string `json:"error"`
}

type generateRequest struct {
	Idea        string `json:"idea" validate:"max=2000"`
	Style       string `json:"style" validate:"max=64"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	Mode        string `json:"mode" validate:"omitempty,oneof=text_to_image image_reference"`
}

type optionsResponse struct {
	Styles       []promptgen.StyleOption       `json:"styles"`
	AspectRatios []promptgen.AspectRatioOption `json:"aspectRatios"`
	Modes        []promptgen.ModeOption        `json:"modes"`
}

type ideaResponse struct {
	Idea string `json:"idea"`
}

func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	pick := opts.IdeaPicker
	if pick == nil {
		pick = promptgen.RandomIdea
	}

	return &Server{
		gen:      opts.Generator,
		logger:   logger,
		observer: opts.Observer,
		metrics:  opts.Metrics,
		timeout:  timeout,
		pickIdea: pick,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	mux.Handle("POST /api/generate", s.route("/api/generate", s.handleGenerate))
	mux.Handle("GET /api/options", s.route("/api/options", s.handleOptions))
	mux.Handle("GET /api/ideas/random", s.route("/api/ideas/random", s.handleRandomIdea))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	mux.Handle("GET /", http.FileServer(http.FS(staticSub)))

	return withRequestID(withLogging(mux, s.logger)), nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) int {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req generateRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json body"})
	}

	req.AspectRatio = strings.TrimSpace(req.AspectRatio)
	req.Mode = strings.TrimSpace(req.Mode)
	if err := s.validate.Struct(req); err != nil {
		return writeJSON(w, http.StatusBadRequest, apiError{Error: validationMessage(err)})
	}

	ratio := promptgen.AspectRatio(req.AspectRatio)
	if ratio == "" {
		ratio = promptgen.AspectSquare
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res, err := s.gen.Generate(ctx, promptgen.Request{
		Idea:        req.Idea,
		Style:       promptgen.ParseStyle(strings.TrimSpace(req.Style)),
		AspectRatio: ratio,
		Mode:        promptgen.ParseMode(req.Mode),
	})
	if err != nil {
		s.logger.Warn("generate failed", "request_id", requestIDFrom(r.Context()), "err", err)
		return writeJSON(w, http.StatusBadGateway, apiError{Error: promptgen.FailureMessage})
	}

	return writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) int {
	return writeJSON(w, http.StatusOK, optionsResponse{
		Styles:       promptgen.Styles(),
		AspectRatios: promptgen.AspectRatios(),
		Modes:        promptgen.Modes(),
	})
}

func (s *Server) handleRandomIdea(w http.ResponseWriter, r *http.Request) int {
	return writeJSON(w, http.StatusOK, ideaResponse{Idea: s.pickIdea()})
}

func (s *Server) route(name string, h func(http.ResponseWriter, *http.Request) int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := h(w, r)
		if s.observer != nil {
			s.observer.ObserveHTTP(name, status)
		}
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, lowerFirst(fe.Field()))
	}
	return "invalid field: " + strings.Join(fields, ", ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func writeJSON(w http.ResponseWriter, status int, v any) int {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	return status
}
