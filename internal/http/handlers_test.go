package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medbot/internal/core"
	"medbot/internal/db"
	"medbot/internal/llm"
	"medbot/internal/observability/metrics"
	"medbot/internal/triage"
	"medbot/pkg"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(context.Context, string, []llm.Message) (string, error) {
	return f.reply, f.err
}

func newTestServer(t *testing.T, client llm.Client) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	classifier := triage.NewClassifier(nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	srv := NewServer(db.NewRepository(conn), core.NewChatService(client, classifier), classifier, m, logger, 50)
	return srv, mock
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	rec := doJSON(t, srv.Router(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssessUrgencyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/assess/urgency", map[string]string{"message": "severe chest pain"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Assessment triage.Assessment `json:"assessment"`
		Emergency  bool              `json:"emergency"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, triage.TierEmergency, resp.Assessment.Tier)
	assert.True(t, resp.Emergency)
}

func TestAssessVitalsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/assess/vitals", map[string]any{
		"systolic": 115, "diastolic": 75, "heart_rate": 72,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results map[string]struct {
			Reading string `json:"reading"`
			Status  string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Normal", resp.Results["blood_pressure"].Status)
	assert.Equal(t, "72 bpm", resp.Results["heart_rate"].Reading)

	// Partial blood pressure is a validation error.
	rec = doJSON(t, router, http.MethodPost, "/api/assess/vitals", map[string]any{"systolic": 115})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessBMIEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/assess/bmi", map[string]float64{
		"weight_kg": 70, "height_m": 1.75,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BMI      float64 `json:"bmi"`
		Category string  `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 22.9, resp.BMI, 0.001)
	assert.Equal(t, "Normal weight", resp.Category)

	rec = doJSON(t, router, http.MethodPost, "/api/assess/bmi", map[string]float64{
		"weight_kg": 70, "height_m": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessInteractionsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/assess/interactions", map[string]any{
		"medications": []string{"Warfarin", "aspirin"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		HasInteractions bool `json:"has_interactions"`
		Findings        []struct {
			Interaction string `json:"interaction"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.HasInteractions)
	require.Len(t, resp.Findings, 1)
	assert.Equal(t, "Increased bleeding risk", resp.Findings[0].Interaction)
}

func TestAssessCardiovascularEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/assess/cardiovascular", map[string]any{
		"risk_factors": []string{"smoking", "obesity"},
		"age":          70,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Risk struct {
			RiskLevel string `json:"risk_level"`
			RiskScore int    `json:"risk_score"`
		} `json:"risk"`
		ActionPlan []string `json:"action_plan"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "High", resp.Risk.RiskLevel)
	assert.Equal(t, 4, resp.Risk.RiskScore)
	assert.NotEmpty(t, resp.ActionPlan)
}

func TestHealthTipsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/health-tips?age=70&gender=male", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tips []string `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Tips, 8)

	rec = doJSON(t, router, http.MethodGet, "/api/health-tips?gender=male", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrugEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/drugs/Tylenol", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rec1 struct {
		GenericName string `json:"generic_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rec1))
	assert.Equal(t, "Acetaminophen", rec1.GenericName)

	rec = doJSON(t, router, http.MethodGet, "/api/drugs/unobtanium", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/drugs?q=pain", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var search struct {
		Results []struct {
			GenericName string `json:"generic_name"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &search))
	assert.Len(t, search.Results, 3)

	rec = doJSON(t, router, http.MethodGet, "/api/drugs", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSymptomAndTopicsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/symptoms/fever", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/symptoms/vertigo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/topics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var topics struct {
		Topics []string `json:"topics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topics))
	assert.Contains(t, topics.Topics, "Sleep hygiene")
}

func sessionRows(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "closed_at", "message_cap", "age", "gender", "medical_conditions", "allergies"}).
		AddRow(id, time.Now(), nil, 50, nil, nil, "{}", "{}")
}

func TestPostMessageChatTurn(t *testing.T) {
	srv, mock := newTestServer(t, &fakeLLM{reply: "Rest and fluids should help."})
	router := srv.Router()

	mock.ExpectQuery(`SELECT id, created_at, closed_at, message_cap`).WillReturnRows(sessionRows("s1"))
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, session_id, role, content`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "content", "urgency", "created_at"}))
	mock.ExpectQuery(`INSERT INTO messages`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO messages`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/s1/messages", pkg.ChatRequest{Content: "what helps a cold?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pkg.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Rest and fluids should help.", resp.Reply)
	assert.Equal(t, "LOW", resp.Urgency)
	assert.False(t, resp.Emergency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostMessageEmergencyBypassesLLM(t *testing.T) {
	srv, mock := newTestServer(t, &fakeLLM{reply: "must not appear"})
	router := srv.Router()

	mock.ExpectQuery(`SELECT id, created_at, closed_at, message_cap`).WillReturnRows(sessionRows("s1"))
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, session_id, role, content`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "content", "urgency", "created_at"}))
	mock.ExpectQuery(`INSERT INTO messages`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`INSERT INTO messages`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/s1/messages", pkg.ChatRequest{Content: "my chest pain is terrible"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pkg.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Emergency)
	assert.Equal(t, "EMERGENCY", resp.Urgency)
	assert.Contains(t, resp.Reply, "EMERGENCY ALERT")
	assert.NotContains(t, resp.Reply, "must not appear")
}

func TestPostMessageCapReached(t *testing.T) {
	srv, mock := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	mock.ExpectQuery(`SELECT id, created_at, closed_at, message_cap`).WillReturnRows(sessionRows("s1"))
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(50))

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/s1/messages", pkg.ChatRequest{Content: "hello again"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pkg.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Capped)
	assert.Equal(t, core.CapMessage, resp.Reply)
}

func TestPostMessageValidation(t *testing.T) {
	srv, _ := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/s1/messages", pkg.ChatRequest{Content: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sessions/s1/messages", pkg.ChatRequest{Content: "hi", Model: "SkyNet"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscriptExport(t *testing.T) {
	srv, mock := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	created := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, session_id, role, content`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "content", "urgency", "created_at"}).
			AddRow(int64(1), "s1", "user", "hello", "LOW", created).
			AddRow(int64(2), "s1", "assistant", "hi there", "", created))

	rec := doJSON(t, router, http.MethodGet, "/api/sessions/s1/transcript", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "MedBot Chat History"))
	assert.Contains(t, body, "You: hello")
	assert.Contains(t, body, "MedBot: hi there")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "medbot_chat_s1.txt")
}

func TestSummaryEndpoint(t *testing.T) {
	srv, mock := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	rows := sqlmock.NewRows([]string{"id", "created_at", "closed_at", "message_cap", "age", "gender", "medical_conditions", "allergies"}).
		AddRow("s1", time.Now(), nil, 50, 34, "female", "{asthma}", "{}")
	mock.ExpectQuery(`SELECT id, created_at, closed_at, message_cap`).WillReturnRows(rows)

	created := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, session_id, role, content`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "content", "urgency", "created_at"}).
			AddRow(int64(1), "s1", "user", "fever of 101 for two days", "MODERATE", created).
			AddRow(int64(2), "s1", "assistant", "sorry to hear that", "", created))

	rec := doJSON(t, router, http.MethodGet, "/api/sessions/s1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "## Your Health Summary")
	assert.Contains(t, body, "**Age:** 34")
	assert.Contains(t, body, "2026-08-20: fever of 101 for two days")
}

func TestCreateSessionEndpoint(t *testing.T) {
	srv, mock := newTestServer(t, &fakeLLM{})
	router := srv.Router()

	mock.ExpectQuery(`INSERT INTO sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	rec := doJSON(t, router, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session    pkg.Session `json:"session"`
		Disclaimer string      `json:"disclaimer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Session.ID)
	assert.Contains(t, resp.Disclaimer, "Medical Disclaimer")
}
