package database

import (
	"time"
)

// Timeline event types. "timeline" is not stored; it is the fallback type
// the activity overview uses for events with an empty type.
const (
	EventTypeCommit       = "commit"
	EventTypeProject      = "project"
	EventTypeAchievement  = "achievement"
	EventTypeEducation    = "education"
	EventTypeWork         = "work"
	EventTypeContribution = "contribution"
	EventTypeTask         = "task"
	EventTypeSchedule     = "schedule"
)

const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

const (
	ContactStatusUnread  = "unread"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// Profile represents an identity record. The site owner's profile carries
// is_admin and the API token the admin endpoints authenticate against.
type Profile struct {
	ID        string
	Name      string
	Headline  string
	Bio       string
	AvatarURL string
	Location  string
	Links     map[string]string
	Skills    []string
	IsAdmin   bool
	APIToken  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimelineEvent represents one entry on the portfolio timeline.
type TimelineEvent struct {
	ID          string
	Type        string
	Title       string
	Description string
	Date        *time.Time
	Repository  string
	Language    string
	Tags        []string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Schedule represents a calendar entry.
type Schedule struct {
	ID                string
	Title             string
	Description       string
	StartTime         *time.Time
	EndTime           *time.Time
	Type              string
	Category          string
	Status            string
	Location          string
	Attendees         []string
	Tags              []string
	ReminderMinutes   []int
	IsRecurring       bool
	RecurrencePattern string
	LastRemindedAt    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Task represents a personal task.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	Category    string
	DueDate     *time.Time
	Tags        []string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactMessage represents a message submitted through the contact form.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}

// BlogPost represents a blog entry. Content is markdown; rendering is the
// client's concern.
type BlogPost struct {
	ID          string
	Slug        string
	Title       string
	Excerpt     string
	Content     string
	Tags        []string
	IsPublished bool
	LikesCount  int
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BlogComment represents a comment on a blog post. ParentCommentID is nil
// for top-level comments; one level of nesting is supported.
type BlogComment struct {
	ID              string
	BlogPostID      string
	ParentCommentID *string
	AuthorName      string
	Content         string
	IsApproved      bool
	CreatedAt       time.Time
}
