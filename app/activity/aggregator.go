package activity

import (
	"sort"
	"time"

	"github.com/folio-dev/folio/app/database"
)

const windowDays = 365

// Aggregator folds timeline events, schedules and tasks into a 365-day
// contribution grid plus summary counters.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

type dayBucket struct {
	count int
	types map[string]struct{}
}

// Run computes the overview for the window of 365 consecutive local calendar
// days ending at now. The grid always has exactly 365 entries, ascending by
// date; days with no activity stay at count 0.
func (a *Aggregator) Run(now time.Time, events []database.TimelineEvent,
	schedules []database.Schedule, tasks []database.Task) Stats {

	today := dayOf(now)

	buckets := make(map[string]*dayBucket, windowDays)
	keys := make([]string, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		buckets[key] = &dayBucket{types: make(map[string]struct{})}
		keys = append(keys, key)
	}

	record := func(at time.Time, kind string) {
		key := dayOf(at).Format("2006-01-02")
		bucket, ok := buckets[key]
		if !ok {
			// outside the grid window; still counted in the scalar totals
			return
		}
		bucket.count++
		bucket.types[kind] = struct{}{}
	}

	for _, event := range events {
		record(eventDate(event), eventType(event))
	}
	for _, schedule := range schedules {
		record(scheduleDate(schedule), "schedule")
	}
	for _, task := range tasks {
		record(taskDate(task), "task")
	}

	recent := make([]DayActivity, 0, windowDays)
	for _, key := range keys {
		bucket := buckets[key]
		types := make([]string, 0, len(bucket.types))
		for kind := range bucket.types {
			types = append(types, kind)
		}
		sort.Strings(types)
		recent = append(recent, DayActivity{Date: key, Count: bucket.count, Types: types})
	}

	stats := Stats{
		TotalEvents:    len(events) + len(schedules) + len(tasks),
		Schedules:      len(schedules),
		Tasks:          len(tasks),
		RecentActivity: recent,
	}

	for _, event := range events {
		switch event.Type {
		case database.EventTypeProject:
			stats.Projects++
		case database.EventTypeAchievement:
			stats.Achievements++
		case database.EventTypeContribution:
			stats.Contributions++
		case database.EventTypeCommit:
			stats.Commits++
		case database.EventTypeTask:
			// summed on top of the task rows, not deduplicated
			stats.Tasks++
		}
	}

	return stats
}

// dayOf truncates a timestamp to its local calendar day.
func dayOf(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func eventDate(event database.TimelineEvent) time.Time {
	if event.Date != nil && !event.Date.IsZero() {
		return *event.Date
	}
	return event.CreatedAt
}

func eventType(event database.TimelineEvent) string {
	if event.Type == "" {
		return "timeline"
	}
	return event.Type
}

func scheduleDate(schedule database.Schedule) time.Time {
	if schedule.StartTime != nil && !schedule.StartTime.IsZero() {
		return *schedule.StartTime
	}
	return schedule.CreatedAt
}

func taskDate(task database.Task) time.Time {
	if task.DueDate != nil && !task.DueDate.IsZero() {
		return *task.DueDate
	}
	if !task.UpdatedAt.IsZero() {
		return task.UpdatedAt
	}
	return task.CreatedAt
}
