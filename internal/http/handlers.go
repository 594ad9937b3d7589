// Package http exposes the REST surface: session and chat endpoints backed by
// Postgres and the completion client, plus stateless assessment endpoints
// over the triage, vitals, health, and drugs packages.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medbot/internal/core"
	"medbot/internal/db"
	"medbot/internal/llm"
	"medbot/internal/observability/metrics"
	"medbot/internal/triage"
	"medbot/pkg"
)

// Server bundles the dependencies required by the HTTP handlers.
type Server struct {
	Repo       *db.Repository
	Chat       *core.ChatService
	Classifier *triage.Classifier
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	MessageCap int
}

// NewServer constructs a Server. A nil logger falls back to slog.Default.
func NewServer(repo *db.Repository, chat *core.ChatService, classifier *triage.Classifier, m *metrics.Metrics, logger *slog.Logger, messageCap int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Repo:       repo,
		Chat:       chat,
		Classifier: classifier,
		Metrics:    m,
		Logger:     logger,
		MessageCap: messageCap,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Put("/sessions/{id}/profile", s.handleUpdateProfile)
		r.Post("/sessions/{id}/messages", s.handlePostMessage)
		r.Get("/sessions/{id}/transcript", s.handleTranscript)
		r.Get("/sessions/{id}/summary", s.handleSummary)

		r.Post("/assess/urgency", s.handleAssessUrgency)
		r.Post("/assess/vitals", s.handleAssessVitals)
		r.Post("/assess/bmi", s.handleAssessBMI)
		r.Post("/assess/interactions", s.handleAssessInteractions)
		r.Post("/assess/cardiovascular", s.handleAssessCardiovascular)
		r.Get("/health-tips", s.handleHealthTips)

		r.Get("/drugs", s.handleSearchDrugs)
		r.Get("/drugs/{name}", s.handleLookupDrug)
		r.Get("/symptoms/{name}", s.handleSymptomInfo)
		r.Get("/topics", s.handleTopics)
		r.Get("/models", s.handleModels)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// corsMiddleware allows the browser front-end to call the API from another
// origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleCreateSession creates a new anonymous session and returns it together
// with the medical disclaimer the UI must display.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Repo.CreateSession(r.Context(), s.MessageCap)
	if err != nil {
		s.internalError(w, "create session", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"session":    sess,
		"disclaimer": core.Disclaimer,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Repo.GetSession(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, db.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.internalError(w, "get session", err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile pkg.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if profile.Age != nil && (*profile.Age < 0 || *profile.Age > 120) {
		respondError(w, http.StatusBadRequest, "age must be between 0 and 120")
		return
	}
	err := s.Repo.UpdateProfile(r.Context(), chi.URLParam(r, "id"), profile)
	if errors.Is(err, db.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.internalError(w, "update profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// handlePostMessage processes one chat turn: triage first, then (unless the
// message is an emergency or the session is capped) the completion endpoint.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	var req pkg.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "empty message")
		return
	}
	model := ""
	if req.Model != "" {
		id, ok := llm.ResolveModel(req.Model)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown model %q", req.Model))
			return
		}
		model = id
	}

	sess, err := s.Repo.GetSession(ctx, sessionID)
	if errors.Is(err, db.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.internalError(w, "get session", err)
		return
	}

	count, err := s.Repo.CountUserMessages(ctx, sessionID)
	if err != nil {
		s.internalError(w, "count messages", err)
		return
	}
	if count >= sess.MessageCap {
		respondJSON(w, http.StatusOK, pkg.ChatResponse{Reply: core.CapMessage, Capped: true})
		return
	}

	history, err := s.Repo.GetTranscript(ctx, sessionID)
	if err != nil {
		s.internalError(w, "get transcript", err)
		return
	}

	result, replyErr := s.Chat.Reply(ctx, sess.Profile, history, model, req.Content)
	if replyErr != nil {
		// The user still gets the fallback reply; record the failure.
		s.Logger.Error("chat reply failed", "session_id", sessionID, "error", replyErr)
	}
	s.Metrics.ObserveChatTurn(string(result.Assessment.Tier), statusLabel(replyErr))

	if _, err := s.Repo.CreateMessage(ctx, sessionID, pkg.RoleUser, req.Content, string(result.Assessment.Tier)); err != nil {
		s.internalError(w, "store user message", err)
		return
	}
	if _, err := s.Repo.CreateMessage(ctx, sessionID, pkg.RoleAssistant, result.Reply, ""); err != nil {
		s.internalError(w, "store assistant message", err)
		return
	}

	respondJSON(w, http.StatusOK, pkg.ChatResponse{
		Reply:     result.Reply,
		Urgency:   string(result.Assessment.Tier),
		Rationale: result.Assessment.Rationale,
		Emergency: result.Emergency,
	})
}

// handleTranscript exports the conversation as plain text for download.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	transcript, err := s.Repo.GetTranscript(r.Context(), sessionID)
	if err != nil {
		s.internalError(w, "get transcript", err)
		return
	}

	var b strings.Builder
	b.WriteString("MedBot Chat History\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, m := range transcript {
		b.WriteString("[" + m.CreatedAt.Format("2006-01-02 15:04:05") + "]\n")
		switch m.Role {
		case pkg.RoleUser:
			b.WriteString("You: " + m.Content + "\n")
		default:
			b.WriteString("MedBot: " + m.Content + "\n")
		}
		b.WriteString(strings.Repeat("-", 30) + "\n\n")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="medbot_chat_`+sessionID+`.txt"`)
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.Logger.Error(op, "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
