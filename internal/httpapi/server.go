package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/riskguard/riskguard/internal/config"
	"github.com/riskguard/riskguard/internal/guard"
	"github.com/riskguard/riskguard/internal/observability"
	"github.com/riskguard/riskguard/internal/report"
)

var errEmptyBody = errors.New("empty request body")

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Server struct {
	cfg      config.Config
	guard    *guard.Guard
	reports  report.Store
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

func New(cfg config.Config, g *guard.Guard, reports report.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		guard:   g,
		reports: reports,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only accept browser websocket connections from the
				// same origin, so a foreign page cannot watch this process's
				// risk feed if the service is exposed beyond localhost.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/chat", s.handleChat)
	r.Get("/v1/risk/reliability", s.handleReliabilityRisk)
	r.Get("/v1/risk/behavioral", s.handleBehavioralRisk)
	r.Get("/v1/risk/privacy", s.handlePrivacyRisk)
	r.Get("/v1/risk/summary", s.handleRiskSummary)
	r.Get("/v1/risk/ws", s.handleRiskWS)
	r.Get("/v1/reports", s.handleListReports)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"window_size":    s.cfg.WindowSize,
		"tracked_calls":  s.guard.WindowLen(),
		"report_enabled": s.cfg.ReportInterval > 0,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req guard.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" && strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "prompt or url is required")
		return
	}

	result := s.guard.Chat(r.Context(), req)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReliabilityRisk(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.guard.ComputeReliabilityRisk())
}

func (s *Server) handleBehavioralRisk(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.guard.ComputeBehavioralRisk())
}

func (s *Server) handlePrivacyRisk(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.guard.ComputePrivacyRisk())
}

func (s *Server) handleRiskSummary(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.guard.ComputeAllRisks())
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	reports, err := s.reports.RecentReports(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if reports == nil {
		reports = []report.RiskReport{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// riskFeedInterval is how often the websocket feed pushes a fresh summary.
const riskFeedInterval = 2 * time.Second

func (s *Server) handleRiskWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain inbound frames so close handshakes and pings are processed.
	go func() {
		defer cancel()
		conn.SetReadLimit(1 << 10)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(riskFeedInterval)
	defer ticker.Stop()

	// Send one summary immediately so a new subscriber is not blind until
	// the first tick.
	for {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(s.guard.ComputeAllRisks()); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
