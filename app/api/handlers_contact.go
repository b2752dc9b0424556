package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/database"
	"github.com/folio-dev/folio/app/taskreq"
)

// SubmitContactMessage accepts a plain contact form submission.
func (h *Handler) SubmitContactMessage(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message := database.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  database.ContactStatusUnread,
	}

	id, err := h.contactRepo.Create(message)
	if err != nil {
		mutationFailed(c, "create_contact_message", err)
		return
	}

	slog.Info("Contact message received", "id", id, "email", req.Email)
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": "received"})
}

// SubmitTaskRequest accepts a structured task request and stores it as a
// contact message in the conventional text format.
func (h *Handler) SubmitTaskRequest(c *gin.Context) {
	var req contactTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	body := taskreq.Serialize(taskreq.TaskRequest{
		Title:             req.Title,
		Description:       req.Description,
		Priority:          req.Priority,
		Category:          req.Category,
		DueDate:           req.DueDate,
		DueTime:           req.DueTime,
		EstimatedDuration: req.EstimatedDuration,
		Budget:            req.Budget,
		Notes:             req.Notes,
	})

	message := database.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: taskreq.Subject(req.Title),
		Message: body,
		Status:  database.ContactStatusUnread,
	}

	id, err := h.contactRepo.Create(message)
	if err != nil {
		mutationFailed(c, "create_contact_message", err)
		return
	}

	slog.Info("Task request received", "id", id, "email", req.Email, "title", req.Title)
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": "received"})
}

func (h *Handler) contactCollection(c *gin.Context) ([]contactMessageResponse, bool) {
	messages, err := h.contactRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_contact_messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	responses := make([]contactMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, toContactResponse(message))
	}
	return responses, true
}

func (h *Handler) AdminGetContactMessages(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	messages, ok := h.contactCollection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
}

func (h *Handler) AdminUpdateContactStatus(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	var req contactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.contactRepo.UpdateStatus(id, req.Status); err != nil {
		mutationFailed(c, "update_contact_status", err)
		return
	}

	updated, err := h.contactRepo.GetByID(id)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "refetch_contact_message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": toContactResponse(*updated)})
}

func (h *Handler) AdminDeleteContactMessage(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.contactRepo.Delete(c.Param("id")); err != nil {
		mutationFailed(c, "delete_contact_message", err)
		return
	}

	messages, ok := h.contactCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// AdminConvertContactToTask turns a task-request message into a task. The
// message must follow the task-request convention; plain messages are
// rejected.
func (h *Handler) AdminConvertContactToTask(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	message, err := h.contactRepo.GetByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_contact_message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if message == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if !taskreq.IsTaskRequest(message.Subject, message.Message) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is not a task request"})
		return
	}

	task := taskreq.ToTask(*message)

	taskID, err := h.taskRepo.Create(task)
	if err != nil {
		mutationFailed(c, "create_task", err)
		return
	}

	if err := h.contactRepo.UpdateStatus(id, database.ContactStatusReplied); err != nil {
		slog.Warn("Failed to mark converted message as replied", "id", id, "error", err)
	}

	created, err := h.taskRepo.GetByID(taskID)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_task", "id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": toTaskResponse(*created)})
}

// AdminConvertContactToSchedule books a meeting from any contact message.
func (h *Handler) AdminConvertContactToSchedule(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	message, err := h.contactRepo.GetByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_contact_message", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if message == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	var req convertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	start, err := parseDate(req.StartTime)
	if err != nil || start == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time"})
		return
	}

	end := start.Add(time.Hour)
	if req.EndTime != "" {
		parsed, err := parseDate(req.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time", "details": err.Error()})
			return
		}
		end = *parsed
	}

	schedule := taskreq.MessageToSchedule(*message, *start, end)

	scheduleID, err := h.scheduleRepo.Create(schedule)
	if err != nil {
		mutationFailed(c, "create_schedule", err)
		return
	}

	if err := h.contactRepo.UpdateStatus(id, database.ContactStatusReplied); err != nil {
		slog.Warn("Failed to mark converted message as replied", "id", id, "error", err)
	}

	created, err := h.scheduleRepo.GetByID(scheduleID)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_schedule", "id", scheduleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"schedule": toScheduleResponse(*created)})
}
