package controller

import (
	"net/http"

	"safecheck-backend/models"
	"safecheck-backend/services"
	"safecheck-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	scheduleService services.ScheduleServiceInterface
	logger          logger.Logger
}

func NewScheduleController(scheduleService services.ScheduleServiceInterface, logger logger.Logger) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// GetScheduleView handles GET /api/v1/schedule
// @Summary Get the safety-check schedule
// @Description Compute the requested schedule view for the authenticated viewer
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param view query string false "View name: overdue, this-week, future, all, completed" default(all)
// @Success 200 {object} models.APIResponse "Schedule view computed"
// @Failure 400 {object} models.APIResponse "Bad Request - Unknown view name"
// @Router /schedule [get]
func (h *ScheduleController) GetScheduleView(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "Viewer context missing",
			},
		})
		return
	}

	view := models.ScheduleView(c.DefaultQuery("view", string(models.ViewAll)))

	result, err := h.scheduleService.GetScheduleView(c.Request.Context(), viewer, view)
	if err != nil {
		h.logger.Errorf("Failed to compute schedule view %q: %v", view, err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid schedule view",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
				Field:   "view",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Schedule view computed",
		Data:    result,
	})
}

// GetOverdueCount handles GET /api/v1/schedule/overdue-count
// @Summary Get the overdue check count
// @Description Number of visible equipment occurrences past due for the viewer
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Overdue count computed"
// @Router /schedule/overdue-count [get]
func (h *ScheduleController) GetOverdueCount(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "Viewer context missing",
			},
		})
		return
	}

	count, err := h.scheduleService.GetOverdueCount(c.Request.Context(), viewer)
	if err != nil {
		h.logger.Errorf("Failed to compute overdue count: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute overdue count",
			Error: &models.APIError{
				Type:    "InternalError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Overdue count computed",
		Data: map[string]interface{}{
			"count": count,
		},
	})
}
