package activity

import (
	"reflect"
	"testing"
	"time"

	"github.com/folio-dev/folio/app/database"
)

func ptr(t time.Time) *time.Time {
	return &t
}

func TestAggregator_GridShape(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.Local)

	stats := aggregator.Run(now, nil, nil, nil)

	if len(stats.RecentActivity) != 365 {
		t.Fatalf("Expected 365 grid entries, got %d", len(stats.RecentActivity))
	}

	if stats.RecentActivity[364].Date != "2026-08-30" {
		t.Errorf("Expected last entry to be today, got %s", stats.RecentActivity[364].Date)
	}

	// Strictly ascending, no gaps, every day present at count 0
	prev, err := time.ParseInLocation("2006-01-02", stats.RecentActivity[0].Date, time.Local)
	if err != nil {
		t.Fatalf("Failed to parse first grid date: %v", err)
	}
	for i := 1; i < len(stats.RecentActivity); i++ {
		day, err := time.ParseInLocation("2006-01-02", stats.RecentActivity[i].Date, time.Local)
		if err != nil {
			t.Fatalf("Failed to parse grid date %d: %v", i, err)
		}
		if !day.After(prev) {
			t.Errorf("Grid entry %d (%s) is not after %s", i, stats.RecentActivity[i].Date, prev.Format("2006-01-02"))
		}
		if day.Sub(prev) != 24*time.Hour && day.Sub(prev) != 23*time.Hour && day.Sub(prev) != 25*time.Hour {
			t.Errorf("Gap between %s and %s", prev.Format("2006-01-02"), stats.RecentActivity[i].Date)
		}
		prev = day
	}

	for i, day := range stats.RecentActivity {
		if day.Count != 0 {
			t.Errorf("Entry %d should have count 0, got %d", i, day.Count)
		}
		if len(day.Types) != 0 {
			t.Errorf("Entry %d should have no types, got %v", i, day.Types)
		}
	}
}

func TestAggregator_WindowBoundaries(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

	events := []database.TimelineEvent{
		{Type: "commit", Date: ptr(now)},                        // today, included
		{Type: "commit", Date: ptr(now.AddDate(0, 0, -364))},    // oldest grid day, included
		{Type: "commit", Date: ptr(now.AddDate(0, 0, -365))},    // too old, excluded from grid
		{Type: "project", Date: ptr(now.AddDate(0, 0, -1000))},  // far outside
	}

	stats := aggregator.Run(now, events, nil, nil)

	last := stats.RecentActivity[364]
	if last.Count != 1 {
		t.Errorf("Expected today's count 1, got %d", last.Count)
	}
	first := stats.RecentActivity[0]
	if first.Count != 1 {
		t.Errorf("Expected oldest grid day count 1, got %d", first.Count)
	}

	total := 0
	for _, day := range stats.RecentActivity {
		total += day.Count
	}
	if total != 2 {
		t.Errorf("Expected 2 events on the grid, got %d", total)
	}

	// Scalar totals run over the whole collections, not the window
	if stats.TotalEvents != 4 {
		t.Errorf("Expected totalEvents 4, got %d", stats.TotalEvents)
	}
	if stats.Commits != 3 {
		t.Errorf("Expected 3 commits, got %d", stats.Commits)
	}
	if stats.Projects != 1 {
		t.Errorf("Expected 1 project, got %d", stats.Projects)
	}
}

func TestAggregator_DateFallbacks(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	events := []database.TimelineEvent{
		{Type: "work", CreatedAt: yesterday}, // no date, falls back to created_at
	}
	schedules := []database.Schedule{
		{CreatedAt: yesterday},                // no start_time
		{StartTime: ptr(now), CreatedAt: now}, // start_time wins
	}
	tasks := []database.Task{
		{DueDate: ptr(now)},                       // due_date first
		{UpdatedAt: yesterday, CreatedAt: now},    // then updated_at
		{CreatedAt: yesterday},                    // then created_at
	}

	stats := aggregator.Run(now, events, schedules, tasks)

	yesterdayCell := stats.RecentActivity[363]
	if yesterdayCell.Count != 4 {
		t.Errorf("Expected 4 items on yesterday, got %d", yesterdayCell.Count)
	}
	if !reflect.DeepEqual(yesterdayCell.Types, []string{"schedule", "task", "work"}) {
		t.Errorf("Unexpected types for yesterday: %v", yesterdayCell.Types)
	}

	todayCell := stats.RecentActivity[364]
	if todayCell.Count != 2 {
		t.Errorf("Expected 2 items on today, got %d", todayCell.Count)
	}
}

func TestAggregator_TypeFallback(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

	events := []database.TimelineEvent{
		{Type: "", Date: ptr(now)},
	}

	stats := aggregator.Run(now, events, nil, nil)

	todayCell := stats.RecentActivity[364]
	if !reflect.DeepEqual(todayCell.Types, []string{"timeline"}) {
		t.Errorf("Expected fallback type 'timeline', got %v", todayCell.Types)
	}
}

func TestAggregator_TaskDoubleCounting(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

	events := []database.TimelineEvent{
		{Type: "task", Date: ptr(now)},
		{Type: "task", Date: ptr(now)},
	}
	tasks := []database.Task{
		{DueDate: ptr(now)},
	}

	stats := aggregator.Run(now, events, nil, tasks)

	// Timeline events of type "task" and task rows are summed, not
	// deduplicated.
	if stats.Tasks != 3 {
		t.Errorf("Expected tasks counter 3, got %d", stats.Tasks)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("Expected totalEvents 3, got %d", stats.TotalEvents)
	}
}

func TestAggregator_FutureDatesExcludedFromGrid(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

	tasks := []database.Task{
		{DueDate: ptr(now.AddDate(0, 0, 30))},
	}

	stats := aggregator.Run(now, nil, nil, tasks)

	total := 0
	for _, day := range stats.RecentActivity {
		total += day.Count
	}
	if total != 0 {
		t.Errorf("Expected no grid activity for future due date, got %d", total)
	}
	if stats.Tasks != 1 {
		t.Errorf("Expected tasks counter 1, got %d", stats.Tasks)
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	aggregator := NewAggregator()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

	events := []database.TimelineEvent{
		{Type: "commit", Date: ptr(now.AddDate(0, 0, -3))},
		{Type: "project", Date: ptr(now.AddDate(0, 0, -10))},
	}
	schedules := []database.Schedule{
		{StartTime: ptr(now.AddDate(0, 0, -3))},
	}
	tasks := []database.Task{
		{DueDate: ptr(now.AddDate(0, 0, -3))},
	}

	first := aggregator.Run(now, events, schedules, tasks)
	second := aggregator.Run(now, events, schedules, tasks)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical input")
	}
}
