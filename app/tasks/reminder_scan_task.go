package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/folio-dev/folio/app/database"
)

// reminderLookahead bounds how far ahead the scan fetches schedules. It has
// to cover the largest reminder offset anyone would configure.
const reminderLookahead = 24 * time.Hour

type ReminderScanTask struct {
	Task
	scheduleRepo database.ScheduleRepository
	interval     time.Duration
}

func NewReminderScanTask(scheduleRepo database.ScheduleRepository, interval time.Duration) *ReminderScanTask {
	return &ReminderScanTask{
		Task:         NewTask(TaskTypeReminderScan, "schedules"),
		scheduleRepo: scheduleRepo,
		interval:     interval,
	}
}

func (t *ReminderScanTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := time.Now().UTC()

	schedules, err := t.scheduleRepo.GetUpcoming(now, now.Add(reminderLookahead))
	if err != nil {
		return fmt.Errorf("failed to get upcoming schedules: %w", err)
	}

	fired := 0
	for _, schedule := range schedules {
		due := dueReminders(schedule, now, t.interval)
		if len(due) == 0 {
			continue
		}

		for _, minutes := range due {
			slog.Info("Schedule reminder",
				"schedule_id", schedule.ID,
				"title", schedule.Title,
				"starts_at", schedule.StartTime.Format(time.RFC3339),
				"minutes_before", minutes)
		}

		if err := t.scheduleRepo.MarkReminded(schedule.ID, now); err != nil {
			slog.Error("Failed to mark schedule reminded", "schedule_id", schedule.ID, "error", err)
			continue
		}
		fired++
	}

	if fired > 0 {
		slog.Info("Task completed",
			"type", "ReminderScan",
			"schedules", fired,
			"duration", t.GetDuration())
	}

	return nil
}

// dueReminders returns the reminder offsets whose fire time falls inside the
// scan tick ending at now, skipping schedules already reminded since the
// earliest due fire time.
func dueReminders(schedule database.Schedule, now time.Time, interval time.Duration) []int {
	if schedule.StartTime == nil {
		return nil
	}

	var due []int
	for _, minutes := range schedule.ReminderMinutes {
		fireAt := schedule.StartTime.Add(-time.Duration(minutes) * time.Minute)
		if fireAt.After(now) || fireAt.Add(interval).Before(now) {
			continue
		}
		if schedule.LastRemindedAt != nil && !schedule.LastRemindedAt.Before(fireAt) {
			continue
		}
		due = append(due, minutes)
	}

	return due
}
