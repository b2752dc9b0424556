package taskreq

import (
	"strings"
)

// The wire convention is frozen: messages stored by the previous system
// must keep classifying and parsing, so every literal below is load-bearing.
const (
	SubjectPrefix = "Task Request: "
	detailsMarker = "TASK REQUEST DETAILS:"
	notesMarker   = "Additional Notes:"
	delimiter     = "---"
	trailer       = "This request was submitted through the website contact form."
)

var labelPrefixes = []struct {
	prefix string
	assign func(*TaskRequest, string)
}{
	{"Task: ", func(r *TaskRequest, v string) { r.Title = v }},
	{"Description: ", func(r *TaskRequest, v string) { r.Description = v }},
	{"Priority: ", func(r *TaskRequest, v string) { r.Priority = v }},
	{"Category: ", func(r *TaskRequest, v string) { r.Category = v }},
	{"Due Date: ", func(r *TaskRequest, v string) { r.DueDate, r.DueTime = splitDueDate(v) }},
	{"Estimated Duration: ", func(r *TaskRequest, v string) { r.EstimatedDuration = v }},
	{"Budget: ", func(r *TaskRequest, v string) { r.Budget = v }},
}

// IsTaskRequest reports whether a contact message follows the task-request
// convention. Both the subject prefix and the body marker are required.
func IsTaskRequest(subject, message string) bool {
	return strings.HasPrefix(subject, SubjectPrefix) && strings.Contains(message, detailsMarker)
}

// Subject builds the conventional subject line for a task request.
func Subject(title string) string {
	return SubjectPrefix + title
}

// Serialize renders a task request as the free-text message body the
// classifier and parser expect.
func Serialize(req TaskRequest) string {
	var b strings.Builder

	b.WriteString(detailsMarker)
	b.WriteString("\n\n")
	b.WriteString("Task: " + req.Title + "\n")
	b.WriteString("Description: " + req.Description + "\n")
	b.WriteString("Priority: " + req.Priority + "\n")
	b.WriteString("Category: " + req.Category + "\n")

	dueDate := req.DueDate
	if req.DueTime != "" {
		dueDate = req.DueDate + " " + req.DueTime
	}
	b.WriteString("Due Date: " + dueDate + "\n")
	b.WriteString("Estimated Duration: " + req.EstimatedDuration + "\n")
	b.WriteString("Budget: " + req.Budget + "\n")

	b.WriteString("\n")
	b.WriteString(notesMarker)
	b.WriteString("\n")
	if req.Notes != "" {
		b.WriteString(req.Notes)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.WriteString(trailer)
	b.WriteString("\n")

	return b.String()
}

// Parse extracts the structured fields back out of a message body. It never
// fails: unmatched lines are ignored and missing sections fall back to
// defaults (empty strings, priority "medium", category "project").
func Parse(message string) TaskRequest {
	var req TaskRequest
	var notes []string
	inNotes := false

	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRight(line, "\r")

		if inNotes {
			trimmed := strings.TrimSpace(line)
			if trimmed == delimiter {
				break
			}
			if trimmed == "" {
				continue
			}
			notes = append(notes, trimmed)
			continue
		}

		if strings.TrimSpace(line) == notesMarker {
			inNotes = true
			continue
		}

		for _, label := range labelPrefixes {
			if strings.HasPrefix(line, label.prefix) {
				label.assign(&req, strings.TrimSpace(strings.TrimPrefix(line, label.prefix)))
				break
			}
		}
	}

	req.Notes = strings.Join(notes, "\n")

	if req.Priority == "" {
		req.Priority = DefaultPriority
	}
	if req.Category == "" {
		req.Category = DefaultCategory
	}

	return req
}

// splitDueDate drops an optional trailing time from a due date value,
// keeping only the part before the first space.
func splitDueDate(value string) (date string, timeOfDay string) {
	parts := strings.SplitN(value, " ", 2)
	date = parts[0]
	if len(parts) == 2 {
		timeOfDay = strings.TrimSpace(parts[1])
	}
	return date, timeOfDay
}
