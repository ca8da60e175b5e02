// Package webhook receives change notifications and turns them into
// synchronisation triggers.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// DefaultMaxBodyBytes caps a notification body. Graph batches at most a few
// hundred small notifications per delivery.
const DefaultMaxBodyBytes = 1 << 20

// Config configures the receiver.
type Config struct {
	// ClientState is the secret registered with the subscription. When set,
	// deliveries that do not carry it are acknowledged and ignored.
	ClientState string

	// MaxBodyBytes limits how much of the body is read. A longer delivery
	// triggers without the client state check. Zero uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server is the notification boundary. It never waits for a pass.
type Server struct {
	controller driving.SyncController
	cfg        Config
}

// notificationBatch is the subset of a Graph change notification we read.
type notificationBatch struct {
	Value []struct {
		ClientState    string `json:"clientState"`
		SubscriptionID string `json:"subscriptionId"`
		Resource       string `json:"resource"`
	} `json:"value"`
}

// NewServer creates a receiver that triggers controller.
func NewServer(controller driving.SyncController, cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{controller: controller, cfg: cfg}
}

// ServeHTTP routes /webhook, /health and /status.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/health" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case r.URL.Path == "/status" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.controller.Status())
	case r.URL.Path == "/webhook" && (r.Method == http.MethodGet || r.Method == http.MethodPost):
		s.handleWebhook(w, r)
	case r.URL.Path == "/webhook" || r.URL.Path == "/health" || r.URL.Path == "/status":
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed")
	default:
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	}
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	// Subscription validation handshake: echo the token as plain text.
	if token := r.URL.Query().Get("validationToken"); token != "" {
		logger.Info("webhook: subscription validation request")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, token)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		// Notifications are hints: an oversized delivery still triggers,
		// without a client state check.
		logger.Warn("webhook: body exceeds %d bytes, triggering without client state check", maxErr.Limit)
	case err != nil:
		writeError(w, http.StatusBadRequest, "bad_request", "failed to read request body")
		return
	case !s.authorised(body):
		logger.Warn("webhook: ignoring delivery without a matching client state")
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
		return
	}

	result := s.controller.Trigger(r.Context())
	logger.Info("webhook: notification received, trigger %s", result)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

// authorised reports whether the delivery may trigger a pass. Bodies are
// parsed leniently: without a configured client state anything triggers.
func (s *Server) authorised(body []byte) bool {
	if s.cfg.ClientState == "" {
		return true
	}

	var batch notificationBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		logger.Debug("webhook: unparseable notification body: %v", err)
		return false
	}
	want := []byte(s.cfg.ClientState)
	for _, n := range batch.Value {
		if subtle.ConstantTimeCompare([]byte(n.ClientState), want) == 1 {
			return true
		}
	}
	return false
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("webhook: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
