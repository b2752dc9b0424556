package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScheduleRepo handles database operations for schedules
type ScheduleRepo struct {
	db *DB
}

var _ ScheduleRepository = (*ScheduleRepo)(nil)

func NewScheduleRepository(db *DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const scheduleColumns = `id, title, COALESCE(description, ''), start_time, end_time,
	       COALESCE(type, ''), COALESCE(category, ''), status, COALESCE(location, ''),
	       COALESCE(attendees, '[]'), COALESCE(tags, '[]'), COALESCE(reminder_minutes, '[]'),
	       is_recurring, COALESCE(recurrence_pattern, ''), last_reminded_at,
	       created_at, updated_at`

func scanSchedule(scan func(dest ...any) error) (Schedule, error) {
	var s Schedule
	var attendees, tags, reminders string
	err := scan(
		&s.ID, &s.Title, &s.Description, &s.StartTime, &s.EndTime,
		&s.Type, &s.Category, &s.Status, &s.Location,
		&attendees, &tags, &reminders,
		&s.IsRecurring, &s.RecurrencePattern, &s.LastRemindedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return s, fmt.Errorf("failed to scan schedule row: %w", err)
	}

	if s.Attendees, err = decodeStrings(attendees); err != nil {
		return s, err
	}
	if s.Tags, err = decodeStrings(tags); err != nil {
		return s, err
	}
	if s.ReminderMinutes, err = decodeInts(reminders); err != nil {
		return s, err
	}
	return s, nil
}

func (r *ScheduleRepo) queryMany(query string, args ...any) ([]Schedule, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows.Scan)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return schedules, nil
}

// GetAll returns all schedules ordered by start time
func (r *ScheduleRepo) GetAll() ([]Schedule, error) {
	schedules, err := r.queryMany(`
		SELECT ` + scheduleColumns + `
		FROM schedules
		ORDER BY COALESCE(start_time, created_at) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	return schedules, nil
}

// GetByID retrieves a schedule by its id
func (r *ScheduleRepo) GetByID(id string) (*Schedule, error) {
	schedules, err := r.queryMany(`
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if len(schedules) == 0 {
		return nil, nil
	}
	return &schedules[0], nil
}

// GetUpcoming returns scheduled entries starting inside the window
func (r *ScheduleRepo) GetUpcoming(from, until time.Time) ([]Schedule, error) {
	schedules, err := r.queryMany(`
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE status = 'scheduled'
		  AND start_time IS NOT NULL
		  AND start_time >= ?
		  AND start_time <= ?
		ORDER BY start_time ASC
	`, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming schedules: %w", err)
	}
	return schedules, nil
}

// GetRecurringEnded returns recurring schedules whose occurrence has passed
// and which have not been cancelled
func (r *ScheduleRepo) GetRecurringEnded(before time.Time) ([]Schedule, error) {
	schedules, err := r.queryMany(`
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE is_recurring = 1
		  AND status != 'cancelled'
		  AND end_time IS NOT NULL
		  AND end_time <= ?
		ORDER BY end_time ASC
	`, before)
	if err != nil {
		return nil, fmt.Errorf("failed to get ended recurring schedules: %w", err)
	}
	return schedules, nil
}

// MarkReminded records that reminders for a schedule were dispatched
func (r *ScheduleRepo) MarkReminded(id string, at time.Time) error {
	_, err := r.db.Exec(`
		UPDATE schedules
		SET last_reminded_at = ?
		WHERE id = ?
	`, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark schedule reminded: %w", err)
	}
	return nil
}

// Create inserts a new schedule and returns its id
func (r *ScheduleRepo) Create(schedule Schedule) (string, error) {
	attendees, err := encodeStrings(schedule.Attendees)
	if err != nil {
		return "", err
	}
	tags, err := encodeStrings(schedule.Tags)
	if err != nil {
		return "", err
	}
	reminders, err := encodeInts(schedule.ReminderMinutes)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = r.db.Exec(`
		INSERT INTO schedules (id, title, description, start_time, end_time,
			type, category, status, location, attendees, tags, reminder_minutes,
			is_recurring, recurrence_pattern, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, schedule.Title, schedule.Description, schedule.StartTime, schedule.EndTime,
		schedule.Type, schedule.Category, schedule.Status, schedule.Location,
		attendees, tags, reminders,
		schedule.IsRecurring, schedule.RecurrencePattern, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert schedule: %w", err)
	}

	return id, nil
}

// Update rewrites a schedule. Returns ErrNoRowsAffected if no row matched.
func (r *ScheduleRepo) Update(id string, schedule Schedule) error {
	attendees, err := encodeStrings(schedule.Attendees)
	if err != nil {
		return err
	}
	tags, err := encodeStrings(schedule.Tags)
	if err != nil {
		return err
	}
	reminders, err := encodeInts(schedule.ReminderMinutes)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(`
		UPDATE schedules
		SET title = ?, description = ?, start_time = ?, end_time = ?, type = ?,
		    category = ?, status = ?, location = ?, attendees = ?, tags = ?,
		    reminder_minutes = ?, is_recurring = ?, recurrence_pattern = ?, updated_at = ?
		WHERE id = ?
	`, schedule.Title, schedule.Description, schedule.StartTime, schedule.EndTime,
		schedule.Type, schedule.Category, schedule.Status, schedule.Location,
		attendees, tags, reminders,
		schedule.IsRecurring, schedule.RecurrencePattern, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// Delete removes a schedule. Returns ErrNoRowsAffected if no row matched.
func (r *ScheduleRepo) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM schedules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}
