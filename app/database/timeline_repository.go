package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimelineRepo handles database operations for timeline events
type TimelineRepo struct {
	db *DB
}

var _ TimelineRepository = (*TimelineRepo)(nil)

func NewTimelineRepository(db *DB) *TimelineRepo {
	return &TimelineRepo{db: db}
}

const timelineColumns = `id, type, title, COALESCE(description, ''), date,
	       COALESCE(repository, ''), COALESCE(language, ''), COALESCE(tags, '[]'),
	       order_index, created_at, updated_at`

func scanTimelineEvent(scan func(dest ...any) error) (TimelineEvent, error) {
	var e TimelineEvent
	var tags string
	err := scan(
		&e.ID, &e.Type, &e.Title, &e.Description, &e.Date,
		&e.Repository, &e.Language, &tags, &e.OrderIndex,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, fmt.Errorf("failed to scan timeline event row: %w", err)
	}

	if e.Tags, err = decodeStrings(tags); err != nil {
		return e, err
	}
	return e, nil
}

// GetAll returns all timeline events, newest first
func (r *TimelineRepo) GetAll() ([]TimelineEvent, error) {
	rows, err := r.db.Query(`
		SELECT ` + timelineColumns + `
		FROM timeline_events
		ORDER BY COALESCE(date, created_at) DESC, order_index ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline events: %w", err)
	}
	defer rows.Close()

	var events []TimelineEvent
	for rows.Next() {
		event, err := scanTimelineEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeline event rows: %w", err)
	}

	return events, nil
}

// GetByID retrieves a timeline event by its id
func (r *TimelineRepo) GetByID(id string) (*TimelineEvent, error) {
	row := r.db.QueryRow(`
		SELECT `+timelineColumns+`
		FROM timeline_events
		WHERE id = ?
	`, id)

	var e TimelineEvent
	var tags string
	err := row.Scan(
		&e.ID, &e.Type, &e.Title, &e.Description, &e.Date,
		&e.Repository, &e.Language, &tags, &e.OrderIndex,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline event: %w", err)
	}

	if e.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new timeline event and returns its id
func (r *TimelineRepo) Create(event TimelineEvent) (string, error) {
	tags, err := encodeStrings(event.Tags)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = r.db.Exec(`
		INSERT INTO timeline_events (id, type, title, description, date,
			repository, language, tags, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, event.Type, event.Title, event.Description, event.Date,
		event.Repository, event.Language, tags, event.OrderIndex, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert timeline event: %w", err)
	}

	return id, nil
}

// Update rewrites a timeline event. Returns ErrNoRowsAffected if no row
// matched the id.
func (r *TimelineRepo) Update(id string, event TimelineEvent) error {
	tags, err := encodeStrings(event.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(`
		UPDATE timeline_events
		SET type = ?, title = ?, description = ?, date = ?, repository = ?,
		    language = ?, tags = ?, order_index = ?, updated_at = ?
		WHERE id = ?
	`, event.Type, event.Title, event.Description, event.Date, event.Repository,
		event.Language, tags, event.OrderIndex, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update timeline event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timeline event %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// Delete removes a timeline event. Returns ErrNoRowsAffected if no row
// matched the id.
func (r *TimelineRepo) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM timeline_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete timeline event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timeline event %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}
