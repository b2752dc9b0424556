package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/database"
)

func (h *Handler) timelineCollection(c *gin.Context) ([]timelineEventResponse, bool) {
	events, err := h.timelineRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_timeline", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	responses := make([]timelineEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toTimelineResponse(event))
	}
	return responses, true
}

func (h *Handler) GetTimeline(c *gin.Context) {
	events, ok := h.timelineCollection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

func (h *Handler) timelineFromRequest(c *gin.Context) (database.TimelineEvent, bool) {
	var req timelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return database.TimelineEvent{}, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date", "details": err.Error()})
		return database.TimelineEvent{}, false
	}

	return database.TimelineEvent{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Repository:  req.Repository,
		Language:    req.Language,
		Tags:        req.Tags,
		OrderIndex:  req.OrderIndex,
	}, true
}

// AdminCreateTimelineEvent creates an event and returns the re-fetched
// collection.
func (h *Handler) AdminCreateTimelineEvent(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	event, ok := h.timelineFromRequest(c)
	if !ok {
		return
	}

	id, err := h.timelineRepo.Create(event)
	if err != nil {
		mutationFailed(c, "create_timeline_event", err)
		return
	}

	created, err := h.timelineRepo.GetByID(id)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_timeline_event", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	events, ok := h.timelineCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": toTimelineResponse(*created), "events": events})
}

func (h *Handler) AdminUpdateTimelineEvent(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	event, ok := h.timelineFromRequest(c)
	if !ok {
		return
	}

	if err := h.timelineRepo.Update(id, event); err != nil {
		mutationFailed(c, "update_timeline_event", err)
		return
	}

	updated, err := h.timelineRepo.GetByID(id)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "refetch_timeline_event", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	events, ok := h.timelineCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": toTimelineResponse(*updated), "events": events})
}

func (h *Handler) AdminDeleteTimelineEvent(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.timelineRepo.Delete(c.Param("id")); err != nil {
		mutationFailed(c, "delete_timeline_event", err)
		return
	}

	events, ok := h.timelineCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
