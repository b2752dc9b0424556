package taskreq

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/folio-dev/folio/app/database"
)

// ToTask builds a Task from a task-request contact message. The caller is
// expected to have classified the message first; parsing a non-conforming
// body simply yields defaults.
func ToTask(message database.ContactMessage) database.Task {
	req := Parse(message.Message)

	title := req.Title
	if title == "" {
		title = strings.TrimPrefix(message.Subject, SubjectPrefix)
	}

	description := req.Description
	if req.Notes != "" {
		if description != "" {
			description += "\n\n"
		}
		description += "Notes: " + req.Notes
	}

	return database.Task{
		Title:       title,
		Description: description,
		Status:      database.TaskStatusTodo,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     parseDueDate(req.DueDate, req.DueTime),
		Tags:        []string{"task-request"},
	}
}

// TaskToSchedule converts a task into a schedule entry, copying title,
// description and tags and taking fresh start/end times.
func TaskToSchedule(task database.Task, start, end time.Time) database.Schedule {
	return database.Schedule{
		Title:       task.Title,
		Description: task.Description,
		StartTime:   &start,
		EndTime:     &end,
		Type:        "task",
		Category:    task.Category,
		Status:      database.ScheduleStatusScheduled,
		Tags:        append([]string{}, task.Tags...),
	}
}

// MessageToSchedule books a schedule directly from a contact message.
func MessageToSchedule(message database.ContactMessage, start, end time.Time) database.Schedule {
	title := message.Subject
	if IsTaskRequest(message.Subject, message.Message) {
		title = strings.TrimPrefix(message.Subject, SubjectPrefix)
	}
	if title == "" {
		title = "Meeting with " + message.Name
	}

	return database.Schedule{
		Title:       title,
		Description: message.Message,
		StartTime:   &start,
		EndTime:     &end,
		Type:        "meeting",
		Category:    "personal",
		Status:      database.ScheduleStatusScheduled,
		Attendees:   []string{message.Name},
	}
}

// parseDueDate turns the textual due date (plus optional time) into a
// timestamp. Unparseable input degrades to nil rather than failing.
func parseDueDate(date, timeOfDay string) *time.Time {
	if date == "" {
		return nil
	}

	value := date
	if timeOfDay != "" {
		value = date + " " + timeOfDay
	}

	parsed, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		parsed, err = dateparse.ParseIn(date, time.Local)
		if err != nil {
			return nil
		}
	}

	return &parsed
}
