package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/folio-dev/folio/app/database"
)

type RecurrenceTask struct {
	Task
	scheduleRepo database.ScheduleRepository
}

func NewRecurrenceTask(scheduleRepo database.ScheduleRepository) *RecurrenceTask {
	return &RecurrenceTask{
		Task:         NewTask(TaskTypeRecurrence, "schedules"),
		scheduleRepo: scheduleRepo,
	}
}

// Execute rolls recurring schedules whose occurrence has passed forward to
// their next occurrence, keeping a single row per series.
func (t *RecurrenceTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := time.Now().UTC()

	schedules, err := t.scheduleRepo.GetRecurringEnded(now)
	if err != nil {
		return fmt.Errorf("failed to get ended recurring schedules: %w", err)
	}

	rolled := 0
	for _, schedule := range schedules {
		next, ok := NextOccurrence(schedule, now)
		if !ok {
			slog.Warn("Recurring schedule has an unknown pattern",
				"schedule_id", schedule.ID, "pattern", schedule.RecurrencePattern)
			continue
		}

		next.Status = database.ScheduleStatusScheduled
		if err := t.scheduleRepo.Update(schedule.ID, next); err != nil {
			slog.Error("Failed to roll schedule forward", "schedule_id", schedule.ID, "error", err)
			continue
		}
		rolled++
	}

	if rolled > 0 {
		slog.Info("Task completed",
			"type", "Recurrence",
			"schedules", rolled,
			"duration", t.GetDuration())
	}

	return nil
}

// NextOccurrence advances a recurring schedule past now according to its
// recurrence pattern (daily, weekly, monthly). The start/end duration is
// preserved. Returns false for unknown patterns or missing times.
func NextOccurrence(schedule database.Schedule, now time.Time) (database.Schedule, bool) {
	if schedule.StartTime == nil || schedule.EndTime == nil {
		return schedule, false
	}

	var years, months, days int
	switch schedule.RecurrencePattern {
	case "daily":
		days = 1
	case "weekly":
		days = 7
	case "monthly":
		months = 1
	default:
		return schedule, false
	}

	duration := schedule.EndTime.Sub(*schedule.StartTime)
	start := *schedule.StartTime
	for !start.After(now) {
		start = start.AddDate(years, months, days)
	}
	end := start.Add(duration)

	next := schedule
	next.StartTime = &start
	next.EndTime = &end
	return next, true
}
