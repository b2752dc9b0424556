package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/activity"
	"github.com/folio-dev/folio/app/auth"
	"github.com/folio-dev/folio/app/blog"
	"github.com/folio-dev/folio/app/database"
	"github.com/folio-dev/folio/app/taskreq"
)

func NewHandler(profileRepo database.ProfileRepository, timelineRepo database.TimelineRepository,
	scheduleRepo database.ScheduleRepository, taskRepo database.TaskRepository,
	contactRepo database.ContactRepository, blogRepo database.BlogRepository,
	authService *auth.Service) *Handler {
	return &Handler{
		profileRepo:  profileRepo,
		timelineRepo: timelineRepo,
		scheduleRepo: scheduleRepo,
		taskRepo:     taskRepo,
		contactRepo:  contactRepo,
		blogRepo:     blogRepo,
		auth:         authService,
		aggregator:   activity.NewAggregator(),
		generator:    blog.NewFeedGenerator(),
	}
}

// requireAdmin re-verifies the caller's admin status against the database.
// Called at the top of every admin operation; the check is never cached.
func (h *Handler) requireAdmin(c *gin.Context) bool {
	_, err := h.auth.RequireAdmin(requestToken(c))
	if err == nil {
		return true
	}

	if errors.Is(err, auth.ErrNoIdentity) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	} else if errors.Is(err, auth.ErrNotAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
	} else {
		slog.Error("Admin verification failed", "error", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "Failed to verify admin status"})
	}
	c.Abort()
	return false
}

// parseDate accepts any reasonable date or timestamp representation.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// mutationFailed maps a repository error to a response. Zero-rows-affected
// is reported distinctly; it usually means the row is gone or was never
// visible to the caller.
func mutationFailed(c *gin.Context, operation string, err error) {
	if errors.Is(err, database.ErrNoRowsAffected) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No rows affected", "details": err.Error()})
		return
	}
	slog.Error("Database error", "operation", operation, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if events, err := h.timelineRepo.GetAll(); err == nil {
		health["timeline_events"] = len(events)
	}
	if posts, err := h.blogRepo.GetPublishedPosts(); err == nil {
		health["published_posts"] = len(posts)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profileRepo.GetSiteProfile()
	if err != nil {
		slog.Error("Database error", "operation", "get_profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not configured"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		Headline:  profile.Headline,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		Location:  profile.Location,
		Links:     profile.Links,
		Skills:    profile.Skills,
	})
}

// GetActivity merges the timeline, schedule and task collections into the
// contribution grid. Any fetch error aborts the whole computation.
func (h *Handler) GetActivity(c *gin.Context) {
	events, err := h.timelineRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_timeline", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity data"})
		return
	}

	schedules, err := h.scheduleRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_schedules", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity data"})
		return
	}

	taskRows, err := h.taskRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity data"})
		return
	}

	stats := h.aggregator.Run(time.Now(), events, schedules, taskRows)
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetBlogFeed(c *gin.Context) {
	posts, err := h.blogRepo.GetPublishedPosts()
	if err != nil {
		slog.Error("Database error", "operation", "get_published_posts", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	profile, err := h.profileRepo.GetSiteProfile()
	if err != nil {
		slog.Error("Database error", "operation", "get_profile", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(profile, posts)
	if err != nil {
		slog.Error("Feed generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func toContactResponse(m database.ContactMessage) contactMessageResponse {
	return contactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    m.Status,
		IsTaskReq: taskreq.IsTaskRequest(m.Subject, m.Message),
		CreatedAt: m.CreatedAt,
	}
}

func toTimelineResponse(e database.TimelineEvent) timelineEventResponse {
	return timelineEventResponse{
		ID:          e.ID,
		Type:        e.Type,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Repository:  e.Repository,
		Language:    e.Language,
		Tags:        e.Tags,
		OrderIndex:  e.OrderIndex,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toScheduleResponse(s database.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:                s.ID,
		Title:             s.Title,
		Description:       s.Description,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		Type:              s.Type,
		Category:          s.Category,
		Status:            s.Status,
		Location:          s.Location,
		Attendees:         s.Attendees,
		Tags:              s.Tags,
		ReminderMinutes:   s.ReminderMinutes,
		IsRecurring:       s.IsRecurring,
		RecurrencePattern: s.RecurrencePattern,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toTaskResponse(t database.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
		Tags:        t.Tags,
		OrderIndex:  t.OrderIndex,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toPostResponse(p database.BlogPost, includeContent bool) postResponse {
	resp := postResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Tags:        p.Tags,
		IsPublished: p.IsPublished,
		LikesCount:  p.LikesCount,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if includeContent {
		resp.Content = p.Content
	}
	return resp
}

func toCommentResponse(comment database.BlogComment) commentResponse {
	return commentResponse{
		ID:              comment.ID,
		BlogPostID:      comment.BlogPostID,
		ParentCommentID: comment.ParentCommentID,
		AuthorName:      comment.AuthorName,
		Content:         comment.Content,
		IsApproved:      comment.IsApproved,
		CreatedAt:       comment.CreatedAt,
	}
}
