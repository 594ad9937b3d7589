package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"medbot/pkg"
)

// ErrSessionNotFound is returned when a session ID does not exist.
var ErrSessionNotFound = errors.New("db: session not found")

// Repository wraps database operations for sessions, messages, and profiles.
type Repository struct {
	DB *sql.DB
}

// NewRepository constructs a Repository from an existing sql.DB.
// The caller is responsible for managing the DB connection lifecycle.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// CreateSession creates a new anonymous session with the given message cap.
func (r *Repository) CreateSession(ctx context.Context, messageCap int) (*pkg.Session, error) {
	s := &pkg.Session{ID: uuid.NewString(), MessageCap: messageCap}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO sessions (id, message_cap)
         VALUES ($1, $2)
         RETURNING created_at`,
		s.ID, messageCap,
	).Scan(&s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// GetSession loads a session and its profile.
func (r *Repository) GetSession(ctx context.Context, sessionID string) (*pkg.Session, error) {
	var s pkg.Session
	var conditions, allergies pq.StringArray
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, created_at, closed_at, message_cap, age, gender, medical_conditions, allergies
         FROM sessions
         WHERE id = $1`,
		sessionID,
	).Scan(&s.ID, &s.CreatedAt, &s.ClosedAt, &s.MessageCap,
		&s.Profile.Age, &s.Profile.Gender, &conditions, &allergies)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.Profile.MedicalConditions = conditions
	s.Profile.Allergies = allergies
	return &s, nil
}

// UpdateProfile replaces the profile fields of a session.
func (r *Repository) UpdateProfile(ctx context.Context, sessionID string, p pkg.Profile) error {
	if p.MedicalConditions == nil {
		p.MedicalConditions = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions
         SET age = $1, gender = $2, medical_conditions = $3, allergies = $4
         WHERE id = $5`,
		p.Age, p.Gender, pq.Array(p.MedicalConditions), pq.Array(p.Allergies), sessionID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CreateMessage stores a new message in a session. Urgency is the triage tier
// for user messages and empty for assistant messages.
func (r *Repository) CreateMessage(ctx context.Context, sessionID string, role pkg.MessageRole, content, urgency string) (*pkg.Message, error) {
	m := pkg.Message{SessionID: sessionID, Role: role, Content: content, Urgency: urgency}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO messages (session_id, role, content, urgency)
         VALUES ($1, $2, $3, $4)
         RETURNING id, created_at`,
		sessionID, role, content, nullable(urgency),
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &m, nil
}

// GetTranscript returns all messages in a session ordered by creation time.
func (r *Repository) GetTranscript(ctx context.Context, sessionID string) ([]pkg.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, session_id, role, content, COALESCE(urgency, ''), created_at
         FROM messages
         WHERE session_id = $1
         ORDER BY created_at ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	defer rows.Close()

	var transcript []pkg.Message
	for rows.Next() {
		var m pkg.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Urgency, &m.CreatedAt); err != nil {
			return nil, err
		}
		transcript = append(transcript, m)
	}
	return transcript, rows.Err()
}

// CountUserMessages counts the user-authored messages in a session, used for
// message-cap enforcement.
func (r *Repository) CountUserMessages(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*)
         FROM messages
         WHERE session_id = $1 AND role = 'user'`,
		sessionID,
	).Scan(&count)
	return count, err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
