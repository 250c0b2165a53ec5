package controller

import (
	"context"
	"net/http"

	"safecheck-backend/models"
	"safecheck-backend/services"
	"safecheck-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type CheckController struct {
	ctx          context.Context
	checkService services.CheckServiceInterface
	logger       logger.Logger
}

func NewCheckController(ctx context.Context, checkService services.CheckServiceInterface, logger logger.Logger) *CheckController {
	return &CheckController{
		ctx:          ctx,
		checkService: checkService,
		logger:       logger,
	}
}

// SubmitCheck handles POST /api/v1/checks
// @Summary Submit a performed safety check
// @Description Record a safety check for an equipment item
// @Tags Safety Checks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SubmitCheckRequest true "Check to record"
// @Success 201 {object} models.APIResponse "Check recorded"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid check data"
// @Router /checks [post]
func (h *CheckController) SubmitCheck(c *gin.Context) {
	var req models.SubmitCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	performedBy := c.GetString("user_id")
	check, err := h.checkService.SubmitCheck(h.ctx, &req, performedBy)
	if err != nil {
		h.logger.Errorf("Failed to submit check: %v", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Failed to submit check",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Safety check recorded successfully",
		Data:    check,
	})
}

// GetCheckHistory handles GET /api/v1/checks
// @Summary Get safety check history
// @Description List recorded safety checks, optionally filtered by equipment or officer
// @Tags Safety Checks
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number for pagination"
// @Param limit query int false "Number of checks per page"
// @Param equipmentID query string false "Equipment ID"
// @Param performedBy query string false "User ID of the performer"
// @Success 200 {object} models.APIResponse "Check history"
// @Router /checks [get]
func (h *CheckController) GetCheckHistory(c *gin.Context) {
	page, limit := paginationParams(c)

	filter := &models.CheckFilter{
		EquipmentID: c.Query("equipmentID"),
		OrgID:       c.Query("orgID"),
		PerformedBy: c.Query("performedBy"),
		Status:      models.CheckStatus(c.Query("status")),
	}

	checks, err := h.checkService.GetCheckHistory(filter)
	if err != nil {
		h.logger.Errorf("Failed to get check history: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to get check history",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	pageItems, pagination := paginate(checks, page, limit)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Check history retrieved successfully",
		Data: map[string]interface{}{
			"checks":     pageItems,
			"pagination": pagination,
		},
	})
}
