package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContactRepo handles database operations for contact messages
type ContactRepo struct {
	db *DB
}

var _ ContactRepository = (*ContactRepo)(nil)

func NewContactRepository(db *DB) *ContactRepo {
	return &ContactRepo{db: db}
}

const contactColumns = `id, name, email, COALESCE(subject, ''), COALESCE(message, ''),
	       status, created_at`

// GetAll returns all contact messages, newest first
func (r *ContactRepo) GetAll() ([]ContactMessage, error) {
	rows, err := r.db.Query(`
		SELECT ` + contactColumns + `
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	defer rows.Close()

	var messages []ContactMessage
	for rows.Next() {
		var m ContactMessage
		err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact message rows: %w", err)
	}

	return messages, nil
}

// GetByID retrieves a contact message by its id
func (r *ContactRepo) GetByID(id string) (*ContactMessage, error) {
	var m ContactMessage
	err := r.db.QueryRow(`
		SELECT `+contactColumns+`
		FROM contact_messages
		WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}

	return &m, nil
}

// Create inserts a new contact message and returns its id
func (r *ContactRepo) Create(message ContactMessage) (string, error) {
	id := uuid.NewString()

	_, err := r.db.Exec(`
		INSERT INTO contact_messages (id, name, email, subject, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, message.Name, message.Email, message.Subject, message.Message,
		ContactStatusUnread, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert contact message: %w", err)
	}

	return id, nil
}

// UpdateStatus moves a contact message through its read/replied lifecycle.
// Returns ErrNoRowsAffected if no row matched.
func (r *ContactRepo) UpdateStatus(id string, status string) error {
	result, err := r.db.Exec(`
		UPDATE contact_messages
		SET status = ?
		WHERE id = ?
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update contact message status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact message %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// Delete removes a contact message. Returns ErrNoRowsAffected if no row matched.
func (r *ContactRepo) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact message %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}
