package taskreq

// TaskRequest holds the structured fields embedded in a task-request
// contact message. DueDate is the plain date part (YYYY-MM-DD); DueTime
// carries an optional time of day.
type TaskRequest struct {
	Title             string
	Description       string
	Priority          string
	Category          string
	DueDate           string
	DueTime           string
	EstimatedDuration string
	Budget            string
	Notes             string
}

const (
	DefaultPriority = "medium"
	DefaultCategory = "project"
)
