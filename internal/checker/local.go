package checker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/ajharbinger/ielts-band-estimator/internal/logger"
)

const languageToolServerClass = "org.languagetool.server.HTTPServer"

// ErrJavaNotFound is returned when no Java runtime is on PATH.
var ErrJavaNotFound = errors.New("java runtime not found")

// LocalServerConfig describes how to launch a LanguageTool server process.
type LocalServerConfig struct {
	JavaBin      string
	JarPath      string
	Port         int
	Language     string
	Timeout      time.Duration
	StartTimeout time.Duration
}

// LocalServer runs LanguageTool as a child Java process and checks text
// through its HTTP API on localhost.
type LocalServer struct {
	cfg    LocalServerConfig
	log    logger.Logger
	client *LanguageToolClient

	mu  sync.Mutex
	cmd *exec.Cmd
}

// JavaAvailable reports whether javaBin resolves to an executable.
func JavaAvailable(javaBin string) bool {
	_, err := exec.LookPath(javaBin)
	return err == nil
}

// NewLocalServer prepares a server; call Start before Check.
func NewLocalServer(cfg LocalServerConfig, log logger.Logger) *LocalServer {
	base := "http://127.0.0.1:" + strconv.Itoa(cfg.Port) + "/v2"
	return &LocalServer{
		cfg:    cfg,
		log:    log.With("backend", "local"),
		client: NewLanguageToolClient(base, cfg.Language, cfg.Timeout),
	}
}

// Start launches the process and blocks until it answers or StartTimeout passes.
func (s *LocalServer) Start(ctx context.Context) error {
	java, err := exec.LookPath(s.cfg.JavaBin)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrJavaNotFound, s.cfg.JavaBin)
	}
	if s.cfg.JarPath == "" {
		return errors.New("LANGUAGETOOL_JAR is not set")
	}
	if _, err := os.Stat(s.cfg.JarPath); err != nil {
		return fmt.Errorf("LanguageTool jar: %w", err)
	}

	cmd := exec.Command(java, "-cp", s.cfg.JarPath, languageToolServerClass,
		"--port", strconv.Itoa(s.cfg.Port), "--allow-origin", "*")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start LanguageTool server: %w", err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	s.log.Info("LanguageTool server starting", "pid", cmd.Process.Pid, "port", s.cfg.Port)

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.StartTimeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.client.Health(waitCtx); err == nil {
			s.log.Info("LanguageTool server ready")
			return nil
		}
		select {
		case <-waitCtx.Done():
			_ = s.Close()
			return fmt.Errorf("LanguageTool server did not become ready: %w", waitCtx.Err())
		case <-ticker.C:
		}
	}
}

// Check delegates to the local HTTP API.
func (s *LocalServer) Check(ctx context.Context, text string) ([]GrammarMatch, error) {
	return s.client.Check(ctx, text)
}

// Close stops the child process.
func (s *LocalServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.client.Close()
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	err := s.cmd.Process.Kill()
	_ = s.cmd.Wait()
	s.cmd = nil
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop LanguageTool server: %w", err)
	}
	return nil
}
