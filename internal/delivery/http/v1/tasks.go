package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-planner/internal/services"
)

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// HandleGetTasks responds with a bare array, unlike the meetings
// listing which is wrapped. Both shapes are kept as clients expect.
func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().
		Int("count", len(tasks)).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.CreateTaskParams{Title: req.Title}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Priority != nil {
		params.Priority = *req.Priority
	}
	if req.DueDate != nil {
		params.DueDate = *req.DueDate
	}

	task, err := h.tasks.CreateTask(c, userID, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().Msg("created task")
	c.JSON(http.StatusCreated, task)
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("task id is required"))
		return
	}

	fields := make(map[string]any)
	err := c.ShouldBindJSON(&fields)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	// The update is an uninterpreted $set: fields aren't restricted to
	// the known task shape, matching how partial edits always worked.
	delete(fields, "_id")
	delete(fields, "user_id")

	err = h.tasks.UpdateTask(c, taskID, userID, fields)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().Msg("updated task")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("task id is required"))
		return
	}

	err := h.tasks.DeleteTask(c, taskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().Msg("deleted task")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
