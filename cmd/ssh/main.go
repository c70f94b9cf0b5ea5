package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/meteor-shooter/internal/config"
	"github.com/tomz197/meteor-shooter/internal/draw"
	"github.com/tomz197/meteor-shooter/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	idleTimeout     = 5 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	seed := config.GetEnvInt(config.EnvSeed, 0)
	noDelay := config.GetEnvBool("SSH_TCP_NODELAY", true)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "seed", seed, "noDelay", noDelay)

	// Cancelled on shutdown; every running session watches it.
	gameCtx, stopGames := context.WithCancel(context.Background())
	defer stopGames()

	h := &sessionHandler{ctx: gameCtx, log: logger, seed: seed}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// TCP_NODELAY keeps frame output and key input latency low
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(noDelay)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	h.close()
	logger.Info("shutting down", "sessions", h.active())
	stopGames()
	h.wait(shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sessionHandler runs one independent game per SSH session.
type sessionHandler struct {
	ctx  context.Context
	log  *log.Logger
	seed int64

	wg       sync.WaitGroup
	mu       sync.Mutex
	sessions int
	closing  bool // Set once shutdown starts; no new sessions are admitted
}

func (h *sessionHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !h.track(1) {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}
		defer h.track(-1)

		logger := h.log.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("game session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// The game ends with the session or on server shutdown, whichever is first.
		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.ctx, cancel)
		defer stop()

		err := loop.Run(ctx, sess, sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Seed:         h.seed,
			IdleTimeout:  idleTimeout,
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("game session ended")
		next(sess)
	}
}

// track adds or removes a running session. Adding fails once close has been called,
// so wg.Add never races with the Wait in wait.
func (h *sessionHandler) track(delta int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if delta > 0 {
		if h.closing {
			return false
		}
		h.wg.Add(delta)
	} else {
		h.wg.Done()
	}
	h.sessions += delta
	return true
}

// close stops admitting sessions.
func (h *sessionHandler) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closing = true
}

func (h *sessionHandler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

// wait blocks until every session has returned or the timeout passes.
func (h *sessionHandler) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		h.log.Warn("sessions still running after shutdown timeout", "sessions", h.active())
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
