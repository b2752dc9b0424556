package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/database"
	"github.com/folio-dev/folio/app/taskreq"
)

func (h *Handler) taskCollection(c *gin.Context) ([]taskResponse, bool) {
	taskRows, err := h.taskRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "get_tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	responses := make([]taskResponse, 0, len(taskRows))
	for _, task := range taskRows {
		responses = append(responses, toTaskResponse(task))
	}
	return responses, true
}

func (h *Handler) AdminGetTasks(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	taskRows, ok := h.taskCollection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": taskRows, "total": len(taskRows)})
}

func (h *Handler) taskFromRequest(c *gin.Context) (database.Task, bool) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return database.Task{}, false
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date", "details": err.Error()})
		return database.Task{}, false
	}

	task := database.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     dueDate,
		Tags:        req.Tags,
		OrderIndex:  req.OrderIndex,
	}
	if task.Status == "" {
		task.Status = database.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = database.TaskPriorityMedium
	}
	return task, true
}

func (h *Handler) AdminCreateTask(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	task, ok := h.taskFromRequest(c)
	if !ok {
		return
	}

	id, err := h.taskRepo.Create(task)
	if err != nil {
		mutationFailed(c, "create_task", err)
		return
	}

	created, err := h.taskRepo.GetByID(id)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_task", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	taskRows, ok := h.taskCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": toTaskResponse(*created), "tasks": taskRows})
}

func (h *Handler) AdminUpdateTask(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	task, ok := h.taskFromRequest(c)
	if !ok {
		return
	}

	if err := h.taskRepo.Update(id, task); err != nil {
		mutationFailed(c, "update_task", err)
		return
	}

	updated, err := h.taskRepo.GetByID(id)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "refetch_task", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	taskRows, ok := h.taskCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": toTaskResponse(*updated), "tasks": taskRows})
}

func (h *Handler) AdminDeleteTask(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.taskRepo.Delete(c.Param("id")); err != nil {
		mutationFailed(c, "delete_task", err)
		return
	}

	taskRows, ok := h.taskCollection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": taskRows})
}

// AdminConvertTaskToSchedule books a schedule slot for an existing task.
// The task itself is left untouched.
func (h *Handler) AdminConvertTaskToSchedule(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	task, err := h.taskRepo.GetByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_task", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
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

	schedule := taskreq.TaskToSchedule(*task, *start, end)

	scheduleID, err := h.scheduleRepo.Create(schedule)
	if err != nil {
		mutationFailed(c, "create_schedule", err)
		return
	}

	created, err := h.scheduleRepo.GetByID(scheduleID)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_schedule", "id", scheduleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"schedule": toScheduleResponse(*created)})
}
