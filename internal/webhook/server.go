package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/alert"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/helius"
)

// Server receives enhanced-transaction batches pushed by Helius.
type Server struct {
	ingestor  *alert.Ingestor
	authToken string
	log       *slog.Logger

	server *http.Server
}

// NewServer creates a new webhook server. When authToken is non-empty the
// Authorization header of every batch must match it.
func NewServer(ingestor *alert.Ingestor, authToken string, log *slog.Logger) *Server {
	return &Server{
		ingestor:  ingestor,
		authToken: authToken,
		log:       log,
	}
}

// Start starts the webhook server
func (s *Server) Start(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/webhook/", s.handleWebhook)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.log.Info("starting webhook server", "port", port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	return s.server.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.authToken != "" && r.Header.Get("Authorization") != s.authToken {
		s.log.Warn("webhook auth rejected", "remote", r.RemoteAddr)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var batch []helius.Transaction
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		s.log.Warn("invalid webhook payload", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.log.Debug("webhook received", "events", len(batch))

	if len(batch) > 0 {
		// Ack fast; the batch keeps its delivery order inside one goroutine.
		go s.ingestor.Ingest(context.Background(), batch)
	}

	w.WriteHeader(http.StatusOK)
}
