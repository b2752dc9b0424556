package api

import (
	"time"

	"github.com/folio-dev/folio/app/activity"
	"github.com/folio-dev/folio/app/auth"
	"github.com/folio-dev/folio/app/blog"
	"github.com/folio-dev/folio/app/database"
)

type GeneratorInterface interface {
	Run(profile *database.Profile, posts []database.BlogPost) (string, error)
}

var _ GeneratorInterface = (*blog.FeedGenerator)(nil)

type Handler struct {
	profileRepo  database.ProfileRepository
	timelineRepo database.TimelineRepository
	scheduleRepo database.ScheduleRepository
	taskRepo     database.TaskRepository
	contactRepo  database.ContactRepository
	blogRepo     database.BlogRepository
	auth         *auth.Service
	aggregator   *activity.Aggregator
	generator    GeneratorInterface
}

// Request payloads. Enum-valued fields are validated as closed sets at the
// boundary.

type timelineEventRequest struct {
	Type        string   `json:"type" binding:"required,oneof=commit project achievement education work contribution task schedule"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Repository  string   `json:"repository"`
	Language    string   `json:"language"`
	Tags        []string `json:"tags"`
	OrderIndex  int      `json:"order_index"`
}

type scheduleRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	Type              string   `json:"type"`
	Category          string   `json:"category"`
	Status            string   `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Location          string   `json:"location"`
	Attendees         []string `json:"attendees"`
	Tags              []string `json:"tags"`
	ReminderMinutes   []int    `json:"reminder_minutes"`
	IsRecurring       bool     `json:"is_recurring"`
	RecurrencePattern string   `json:"recurrence_pattern" binding:"omitempty,oneof=daily weekly monthly"`
}

type taskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string   `json:"category"`
	DueDate     string   `json:"due_date"`
	Tags        []string `json:"tags"`
	OrderIndex  int      `json:"order_index"`
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type contactTaskRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Priority          string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category          string `json:"category"`
	DueDate           string `json:"due_date"`
	DueTime           string `json:"due_time"`
	EstimatedDuration string `json:"estimated_duration"`
	Budget            string `json:"budget"`
	Notes             string `json:"notes"`
}

type contactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unread read replied"`
}

type convertScheduleRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"`
}

type commentRequest struct {
	AuthorName      string  `json:"author_name" binding:"required"`
	Content         string  `json:"content" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
}

type postRequest struct {
	Title       string   `json:"title" binding:"required"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	PublishedAt string   `json:"published_at"`
}

// Response shapes.

type profileResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Headline  string            `json:"headline"`
	Bio       string            `json:"bio"`
	AvatarURL string            `json:"avatar_url"`
	Location  string            `json:"location"`
	Links     map[string]string `json:"links"`
	Skills    []string          `json:"skills"`
}

type timelineEventResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Repository  string     `json:"repository,omitempty"`
	Language    string     `json:"language,omitempty"`
	Tags        []string   `json:"tags"`
	OrderIndex  int        `json:"order_index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type scheduleResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	StartTime         *time.Time `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	Type              string     `json:"type"`
	Category          string     `json:"category"`
	Status            string     `json:"status"`
	Location          string     `json:"location,omitempty"`
	Attendees         []string   `json:"attendees"`
	Tags              []string   `json:"tags"`
	ReminderMinutes   []int      `json:"reminder_minutes"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern string     `json:"recurrence_pattern,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
	OrderIndex  int        `json:"order_index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type contactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	IsTaskReq bool      `json:"is_task_request"`
	CreatedAt time.Time `json:"created_at"`
}

type postResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"is_published"`
	LikesCount  int        `json:"likes_count"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type commentResponse struct {
	ID              string    `json:"id"`
	BlogPostID      string    `json:"blog_post_id"`
	ParentCommentID *string   `json:"parent_comment_id"`
	AuthorName      string    `json:"author_name"`
	Content         string    `json:"content"`
	IsApproved      bool      `json:"is_approved"`
	CreatedAt       time.Time `json:"created_at"`
}

type threadedCommentResponse struct {
	commentResponse
	Replies []commentResponse `json:"replies"`
}
