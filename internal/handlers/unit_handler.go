package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
	"comlab/internal/patch"
	"comlab/internal/services"
)

const unitsPagePath = "/computer_units/"

// UnitHandler handles computer unit requests.
type UnitHandler struct {
	unitService services.ComputerUnitServicer
}

// NewUnitHandler creates a new UnitHandler.
func NewUnitHandler(unitService services.ComputerUnitServicer) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// CreateUnitRequest represents the request payload for adding a unit.
type CreateUnitRequest struct {
	UnitID string            `json:"unit_id" binding:"required,max=20"`
	Status models.UnitStatus `json:"status" binding:"omitempty,unit_status"`
}

// ListUnits handles listing every unit.
// @Summary     List units
// @Description All computer units, newest first
// @Tags        units
// @Produce     json
// @Success     200 {object} map[string]interface{} "Units"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /units [get]
func (h *UnitHandler) ListUnits(c *gin.Context) {
	units, err := h.unitService.ListUnits()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "units": units, "total": len(units)})
}

// CreateUnit handles adding a unit.
// @Summary     Create a unit
// @Tags        units
// @Accept      json
// @Produce     json
// @Param       request body CreateUnitRequest true "Unit details"
// @Success     201 {object} map[string]interface{} "Unit created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Unit ID already exists"
// @Router      /units [post]
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	unit, err := h.unitService.CreateUnit(req.UnitID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Computer unit " + unit.UnitID + " created successfully",
		"unit":    unit,
	})
}

// GetUnit handles fetching one unit.
// @Summary     Get a unit
// @Tags        units
// @Produce     json
// @Param       id path int true "Unit ID"
// @Success     200 {object} map[string]interface{} "Unit"
// @Failure     404 {object} ErrorResponse "Unit not found"
// @Router      /units/{id} [get]
func (h *UnitHandler) GetUnit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	unit, err := h.unitService.GetUnitByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "unit": unit})
}

// UpdateUnit handles a partial update of a unit.
// @Summary     Update a unit
// @Tags        units
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Unit ID"
// @Param       request body services.UnitPatch true "Fields to change"
// @Success     200 {object} map[string]interface{} "Unit updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unit not found"
// @Failure     409 {object} ErrorResponse "Unit ID taken by another unit"
// @Router      /units/{id} [put]
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var p services.UnitPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}

	unit, err := h.unitService.UpdateUnit(id, p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Computer unit " + unit.UnitID + " updated successfully",
		"unit":    unit,
	})
}

// UnitsPage returns the units screen context.
func (h *UnitHandler) UnitsPage(c *gin.Context) {
	units, err := h.unitService.ListUnits()
	if err != nil {
		respondWithError(c, err)
		return
	}

	available := 0
	for _, u := range units {
		if u.Status == models.UnitStatusAvailable {
			available++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"current_page":    "computer_units",
		"units":           units,
		"total_units":     len(units),
		"available_units": available,
		"flash":           popFlash(c),
	})
}

// AddUnitForm handles the add-unit form.
func (h *UnitHandler) AddUnitForm(c *gin.Context) {
	unitID := formValue(c, "unitId")
	status := formValue(c, "status")
	if unitID == "" || status == "" {
		redirectWithFlash(c, unitsPagePath, FlashError, "Unit ID and Status are required fields.")
		return
	}

	unit, err := h.unitService.CreateUnit(unitID, models.UnitStatus(status))
	switch {
	case apperrors.HasCode(err, apperrors.ErrDuplicateUnitID):
		redirectWithFlash(c, unitsPagePath, FlashError, "Unit ID already exists.")
	case err != nil:
		redirectWithFlash(c, unitsPagePath, FlashError, "Error adding computer unit: "+errorMessage(err))
	default:
		redirectWithFlash(c, unitsPagePath, FlashSuccess, "Computer unit "+unit.UnitID+" added successfully!")
	}
}

// EditUnitForm handles the edit-unit form. Both fields are required.
func (h *UnitHandler) EditUnitForm(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if _, err := h.unitService.GetUnitByID(id); err != nil {
		respondWithError(c, err)
		return
	}

	unitID := formValue(c, "unitId")
	status := formValue(c, "status")
	if unitID == "" || status == "" {
		redirectWithFlash(c, unitsPagePath, FlashError, "Unit ID and Status are required fields.")
		return
	}

	unit, err := h.unitService.UpdateUnit(id, services.UnitPatch{
		UnitID: patch.Value(unitID),
		Status: patch.Value(models.UnitStatus(status)),
	})
	switch {
	case apperrors.HasCode(err, apperrors.ErrDuplicateUnitID):
		redirectWithFlash(c, unitsPagePath, FlashError, errorMessage(err))
	case err != nil:
		redirectWithFlash(c, unitsPagePath, FlashError, "Error updating computer unit: "+errorMessage(err))
	default:
		redirectWithFlash(c, unitsPagePath, FlashSuccess, "Computer unit "+unit.UnitID+" updated successfully!")
	}
}
