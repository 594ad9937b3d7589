package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"medbot/internal/core"
	"medbot/internal/db"
	"medbot/internal/drugs"
	"medbot/internal/health"
	"medbot/internal/llm"
	"medbot/internal/vitals"
	"medbot/pkg"
)

// drugDB is the process-wide drug reference table. Immutable after init.
var drugDB = drugs.NewDatabase()

type urgencyRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleAssessUrgency(w http.ResponseWriter, r *http.Request) {
	var req urgencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	assessment := s.Classifier.AssessUrgency(req.Message)
	s.Metrics.ObserveAssessment("urgency", "ok")
	respondJSON(w, http.StatusOK, map[string]any{
		"assessment": assessment,
		"emergency":  s.Classifier.IsEmergency(req.Message),
	})
}

func (s *Server) handleAssessVitals(w http.ResponseWriter, r *http.Request) {
	var req vitals.VitalSigns
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	report, err := vitals.Interpret(req)
	if err != nil {
		s.Metrics.ObserveAssessment("vitals", "error")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Metrics.ObserveAssessment("vitals", "ok")
	respondJSON(w, http.StatusOK, map[string]any{"results": report.Results()})
}

type bmiRequest struct {
	WeightKg float64 `json:"weight_kg"`
	HeightM  float64 `json:"height_m"`
}

func (s *Server) handleAssessBMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := health.CalculateBMI(req.WeightKg, req.HeightM)
	if err != nil {
		s.Metrics.ObserveAssessment("bmi", "error")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Metrics.ObserveAssessment("bmi", "ok")
	respondJSON(w, http.StatusOK, result)
}

type interactionsRequest struct {
	Medications []string `json:"medications"`
}

func (s *Server) handleAssessInteractions(w http.ResponseWriter, r *http.Request) {
	var req interactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.Metrics.ObserveAssessment("interactions", "ok")
	respondJSON(w, http.StatusOK, drugs.CheckInteractions(req.Medications))
}

type cardiovascularRequest struct {
	RiskFactors []string `json:"risk_factors"`
	Age         int      `json:"age"`
}

func (s *Server) handleAssessCardiovascular(w http.ResponseWriter, r *http.Request) {
	var req cardiovascularRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	profile, err := health.AssessCardiovascularRisk(req.RiskFactors, req.Age)
	if err != nil {
		s.Metrics.ObserveAssessment("cardiovascular", "error")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Metrics.ObserveAssessment("cardiovascular", "ok")
	respondJSON(w, http.StatusOK, map[string]any{
		"risk":        profile,
		"action_plan": health.ActionPlan(profile),
	})
}

func (s *Server) handleHealthTips(w http.ResponseWriter, r *http.Request) {
	age, err := strconv.Atoi(r.URL.Query().Get("age"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "age must be an integer")
		return
	}
	tips, err := health.GenerateHealthTips(age, r.URL.Query().Get("gender"))
	if err != nil {
		s.Metrics.ObserveAssessment("tips", "error")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.Metrics.ObserveAssessment("tips", "ok")
	respondJSON(w, http.StatusOK, map[string]any{"tips": tips})
}

func (s *Server) handleLookupDrug(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec, ok := drugDB.Lookup(name)
	if !ok {
		respondError(w, http.StatusNotFound, "drug not found")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSearchDrugs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	results := drugDB.Search(query)
	if results == nil {
		results = []drugs.Record{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleSymptomInfo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info, ok := s.Classifier.SymptomInfo(name)
	if !ok {
		respondError(w, http.StatusNotFound, "symptom not found")
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleTopics(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"topics": core.QuickTopics})
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"models": llm.AvailableModels()})
}

// handleSummary renders the markdown health summary for a session from its
// profile and the transcript's concerning user messages.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	sess, err := s.Repo.GetSession(ctx, sessionID)
	if errors.Is(err, db.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.internalError(w, "get session", err)
		return
	}
	transcript, err := s.Repo.GetTranscript(ctx, sessionID)
	if err != nil {
		s.internalError(w, "get transcript", err)
		return
	}

	profile := health.SummaryProfile{
		Age:               sess.Profile.Age,
		MedicalConditions: sess.Profile.MedicalConditions,
		Allergies:         sess.Profile.Allergies,
	}
	if sess.Profile.Gender != nil {
		profile.Gender = *sess.Profile.Gender
	}

	var notes []health.SymptomNote
	for _, m := range transcript {
		if m.Role != pkg.RoleUser {
			continue
		}
		// Only messages the classifier found concerning or worse.
		if m.Urgency == "" || m.Urgency == "LOW" {
			continue
		}
		notes = append(notes, health.SymptomNote{
			Date:        m.CreatedAt.Format("2006-01-02"),
			Description: m.Content,
		})
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(health.FormatSummary(profile, notes)))
}
