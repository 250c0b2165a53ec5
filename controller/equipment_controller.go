package controller

import (
	"context"
	"net/http"
	"strings"

	"safecheck-backend/models"
	"safecheck-backend/services"
	"safecheck-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type EquipmentController struct {
	ctx              context.Context
	equipmentService services.EquipmentServiceInterface
	logger           logger.Logger
	validate         *validator.Validate
}

func NewEquipmentController(ctx context.Context, equipmentService services.EquipmentServiceInterface, logger logger.Logger) *EquipmentController {
	return &EquipmentController{
		ctx:              ctx,
		equipmentService: equipmentService,
		logger:           logger,
		validate:         validator.New(),
	}
}

// formatValidationErrors converts validator errors into one API error per
// failing field, reporting only the first.
func formatValidationErrors(err error) *models.APIError {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fieldErr := errs[0]
		return &models.APIError{
			Type:    "ValidationError",
			Details: "failed on the '" + fieldErr.Tag() + "' rule",
			Field:   strings.ToLower(fieldErr.Field()),
		}
	}
	return &models.APIError{
		Type:    "ValidationError",
		Details: err.Error(),
	}
}

// CreateEquipment handles POST /api/v1/equipment
// @Summary Create equipment
// @Description Register a new equipment item, optionally with a safety-check schedule
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateEquipmentRequest true "Equipment to create"
// @Success 201 {object} models.APIResponse "Equipment created"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid equipment data"
// @Router /equipment [post]
func (h *EquipmentController) CreateEquipment(c *gin.Context) {
	var req models.CreateEquipmentRequest
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

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid equipment data",
			Error:   formatValidationErrors(err),
		})
		return
	}

	createdBy := c.GetString("user_id")
	equipment, err := h.equipmentService.CreateEquipment(h.ctx, &req, createdBy)
	if err != nil {
		h.logger.Errorf("Failed to create equipment: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to create equipment",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Equipment created successfully",
		Data:    equipment,
	})
}

// ListEquipment handles GET /api/v1/equipment
// @Summary List equipment
// @Description List equipment, optionally filtered by organization or frequency
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number for pagination"
// @Param limit query int false "Number of equipment items per page"
// @Param orgID query string false "Organization ID"
// @Param frequency query string false "Safety frequency"
// @Param manufacturer query string false "Manufacturer"
// @Success 200 {object} models.APIResponse "Equipment list"
// @Router /equipment [get]
func (h *EquipmentController) ListEquipment(c *gin.Context) {
	page, limit := paginationParams(c)

	filter := &models.EquipmentFilter{
		OrgID:           c.Query("orgID"),
		SafetyFrequency: models.SafetyFrequency(c.Query("frequency")),
		Manufacturer:    c.Query("manufacturer"),
	}

	equipment, err := h.equipmentService.GetEquipment(filter)
	if err != nil {
		h.logger.Errorf("Failed to list equipment: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to list equipment",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	pageItems, pagination := paginate(equipment, page, limit)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Equipment retrieved successfully",
		Data: map[string]interface{}{
			"equipment":  pageItems,
			"pagination": pagination,
		},
	})
}

// GetEquipment handles GET /api/v1/equipment/:id
// @Summary Get equipment by ID
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} models.APIResponse "Equipment found"
// @Failure 404 {object} models.APIResponse "Equipment not found"
// @Router /equipment/{id} [get]
func (h *EquipmentController) GetEquipment(c *gin.Context) {
	id := c.Param("id")

	equipment, err := h.equipmentService.GetEquipmentByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.APIResponse{
			Status:  "error",
			Code:    http.StatusNotFound,
			Message: "Equipment not found",
			Error: &models.APIError{
				Type:    "NotFoundError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Equipment retrieved successfully",
		Data:    equipment,
	})
}

// UpdateEquipment handles PATCH /api/v1/equipment/:id
// @Summary Update equipment
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body models.UpdateEquipmentRequest true "Fields to update"
// @Success 200 {object} models.APIResponse "Equipment updated"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid update data"
// @Router /equipment/{id} [patch]
func (h *EquipmentController) UpdateEquipment(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateEquipmentRequest
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

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid equipment data",
			Error:   formatValidationErrors(err),
		})
		return
	}

	updatedBy := c.GetString("user_id")
	equipment, err := h.equipmentService.UpdateEquipment(h.ctx, id, &req, updatedBy)
	if err != nil {
		h.logger.Errorf("Failed to update equipment %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to update equipment",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Equipment updated successfully",
		Data:    equipment,
	})
}

// DeleteEquipment handles DELETE /api/v1/equipment/:id
// @Summary Delete equipment
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} models.APIResponse "Equipment deleted"
// @Router /equipment/{id} [delete]
func (h *EquipmentController) DeleteEquipment(c *gin.Context) {
	id := c.Param("id")

	if err := h.equipmentService.DeleteEquipment(id); err != nil {
		h.logger.Errorf("Failed to delete equipment %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to delete equipment",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Equipment deleted successfully",
	})
}
