package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/services"
)

func (h *handlerImpl) HandleGetMeetings(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	meetings, err := h.meetings.GetMeetingsByUserID(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get meetings")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().
		Int("count", len(meetings)).
		Msg("fetched meetings")
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

func (h *handlerImpl) HandleCreateMeeting(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	payload := make(models.Meeting)
	err := c.ShouldBindJSON(&payload)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	meeting, err := h.meetings.CreateMeeting(c, userID, payload)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			abort(c, newBadRequestError(validationErr.Message))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create meeting")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().Msg("created meeting")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Meeting created successfully",
		"meeting": meeting,
	})
}

func (h *handlerImpl) HandleGetMeeting(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	meeting, err := h.meetings.GetMeetingByID(c, c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			abort(c, newNotFoundError("Meeting not found"))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to get meeting")
		abort(c, newInternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

func (h *handlerImpl) HandleUpdateMeeting(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
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

	delete(fields, "_id")
	delete(fields, "user_id")

	meetingID := c.Param("id")
	err = h.meetings.UpdateMeeting(c, meetingID, userID, fields)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			abort(c, newBadRequestError(validationErr.Message))
		case errors.Is(err, services.ErrMeetingNotFound):
			abort(c, newNotFoundError("Meeting not found or update failed"))
		default:
			h.logger.Error().
				Err(err).
				Msg("failed to update meeting")
			abort(c, newInternalError(err.Error()))
		}
		return
	}

	meeting, err := h.meetings.GetMeetingByID(c, meetingID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get updated meeting")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().Msg("updated meeting")
	c.JSON(http.StatusOK, gin.H{
		"message": "Meeting updated successfully",
		"meeting": meeting,
	})
}

func (h *handlerImpl) HandleDeleteMeeting(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	err := h.meetings.DeleteMeeting(c, c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			abort(c, newNotFoundError("Meeting not found or delete failed"))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete meeting")
		abort(c, newInternalError(err.Error()))
		return
	}

	h.logger.Info().Msg("deleted meeting")
	c.JSON(http.StatusOK, gin.H{"message": "Meeting deleted successfully"})
}
