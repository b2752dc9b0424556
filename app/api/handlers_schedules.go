package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/database"
)

func (h *Handler) scheduleCollection(c *gin.Context) ([]scheduleResponse, bool) {
	schedules, err := h.scheduleRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_schedules", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	responses := make([]scheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, toScheduleResponse(schedule))
	}
	return responses, true
}

func (h *Handler) AdminGetSchedules(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	schedules, ok := h.scheduleCollection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules, "total": len(schedules)})
}

func (h *Handler) scheduleFromRequest(c *gin.Context) (database.Schedule, bool) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return database.Schedule{}, false
	}

	startTime, err := parseDate(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time", "details": err.Error()})
		return database.Schedule{}, false
	}

	endTime, err := parseDate(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time", "details": err.Error()})
		return database.Schedule{}, false
	}

	schedule := database.Schedule{
		Title:             req.Title,
		Description:       req.Description,
		StartTime:         startTime,
		EndTime:           endTime,
		Type:              req.Type,
		Category:          req.Category,
		Status:            req.Status,
		Location:          req.Location,
		Attendees:         req.Attendees,
		Tags:              req.Tags,
		ReminderMinutes:   req.ReminderMinutes,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
	}
	if schedule.Status == "" {
		schedule.Status = database.ScheduleStatusScheduled
	}
	return schedule, true
}

func (h *Handler) AdminCreateSchedule(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	schedule, ok := h.scheduleFromRequest(c)
	if !ok {
		return
	}

	id, err := h.scheduleRepo.Create(schedule)
	if err != nil {
		mutationFailed(c, "create_schedule", err)
		return
	}

	created, err := h.scheduleRepo.GetByID(id)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_schedule", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	schedules, ok := h.scheduleCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"schedule": toScheduleResponse(*created), "schedules": schedules})
}

func (h *Handler) AdminUpdateSchedule(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	schedule, ok := h.scheduleFromRequest(c)
	if !ok {
		return
	}

	if err := h.scheduleRepo.Update(id, schedule); err != nil {
		mutationFailed(c, "update_schedule", err)
		return
	}

	updated, err := h.scheduleRepo.GetByID(id)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "refetch_schedule", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	schedules, ok := h.scheduleCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": toScheduleResponse(*updated), "schedules": schedules})
}

func (h *Handler) AdminDeleteSchedule(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.scheduleRepo.Delete(c.Param("id")); err != nil {
		mutationFailed(c, "delete_schedule", err)
		return
	}

	schedules, ok := h.scheduleCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}
