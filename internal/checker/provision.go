package checker

import (
	"context"
	"errors"
	"io"
	"time"

	apperrors "github.com/ajharbinger/ielts-band-estimator/internal/errors"
	"github.com/ajharbinger/ielts-band-estimator/internal/logger"
	"github.com/ajharbinger/ielts-band-estimator/pkg/config"
)

// Handle is the process-wide grammar checker, built once at startup. It
// holds either a usable backend or the reason initialisation failed, and is
// read-only afterwards apart from the health counters.
type Handle struct {
	backend       string
	checker       Checker
	initErr       error
	javaAvailable bool
	monitor       *HealthMonitor
	closer        io.Closer
}

// Provision selects the configured backend and probes it once.
func Provision(ctx context.Context, cfg config.CheckerConfig, log logger.Logger) *Handle {
	h := &Handle{
		backend:       cfg.Backend,
		javaAvailable: JavaAvailable(cfg.JavaBin),
		monitor:       NewHealthMonitor(),
	}
	log = log.With("backend", cfg.Backend)

	if cfg.UsesLocalProcess() {
		server := NewLocalServer(LocalServerConfig{
			JavaBin:      cfg.JavaBin,
			JarPath:      cfg.JarPath,
			Port:         cfg.LocalPort,
			Language:     cfg.Language,
			Timeout:      cfg.Timeout,
			StartTimeout: cfg.StartTimeout,
		}, log)
		if err := server.Start(ctx); err != nil {
			h.initErr = err
			log.Error("grammar checker initialization failed", err)
			return h
		}
		h.checker = server
		h.closer = server
		log.Info("grammar checker initialized")
		return h
	}

	client := NewLanguageToolClient(cfg.URL, cfg.Language, cfg.Timeout,
		WithCredentials(cfg.Username, cfg.APIKey))
	probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Health(probeCtx); err != nil {
		h.initErr = err
		log.Error("grammar checker initialization failed", err, "url", cfg.URL)
		return h
	}
	h.checker = client
	h.closer = client
	log.Info("grammar checker initialized", "url", cfg.URL)
	return h
}

// NewHandle wraps an already-initialised checker (tests, alternative backends).
// A nil checker with a non-nil initErr produces an unavailable handle.
func NewHandle(backend string, c Checker, initErr error, javaAvailable bool) *Handle {
	if c == nil && initErr == nil {
		initErr = errors.New("no grammar checker configured")
	}
	return &Handle{
		backend:       backend,
		checker:       c,
		initErr:       initErr,
		javaAvailable: javaAvailable,
		monitor:       NewHealthMonitor(),
	}
}

// Check runs the grammar check. Failures of any kind are CheckerUnavailable.
func (h *Handle) Check(ctx context.Context, text string) ([]GrammarMatch, error) {
	if !h.Available() {
		return nil, apperrors.CheckerUnavailable("Grammar checking failed", h.initErr).WithOperation("check")
	}

	start := time.Now()
	matches, err := h.checker.Check(ctx, text)
	if err != nil {
		h.monitor.RecordFailure(err)
		return nil, apperrors.CheckerUnavailable("Grammar checking failed", err).WithOperation("check")
	}
	h.monitor.RecordSuccess(time.Since(start))
	return matches, nil
}

// Available reports whether initialisation succeeded.
func (h *Handle) Available() bool {
	return h.checker != nil && h.initErr == nil
}

// InitError is the initialisation failure, or nil.
func (h *Handle) InitError() error {
	return h.initErr
}

// JavaAvailable reports whether a Java runtime was found at startup.
func (h *Handle) JavaAvailable() bool {
	return h.javaAvailable
}

// Backend names the configured backend.
func (h *Handle) Backend() string {
	return h.backend
}

// Monitor exposes the check outcome counters.
func (h *Handle) Monitor() *HealthMonitor {
	return h.monitor
}

// Close releases the backend (stops a local server process).
func (h *Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}
