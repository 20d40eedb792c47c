package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"comlab/internal/services"
)

const kioskPagePath = "/"

// KioskHandler serves the public sign-in / sign-out kiosk.
type KioskHandler struct {
	kioskService services.KioskServicer
}

// NewKioskHandler creates a new KioskHandler.
func NewKioskHandler(kioskService services.KioskServicer) *KioskHandler {
	return &KioskHandler{kioskService: kioskService}
}

// IdentifyRequest is kiosk step one. Blank values are rejected by the
// kiosk service so the API and the form report the same message.
type IdentifyRequest struct {
	StudentID string `json:"student_id"`
}

// FinalizeRequest is kiosk step two.
type FinalizeRequest struct {
	StudentID string `json:"student_id"`
	UnitID    string `json:"unit_id"`
}

// kioskBody shapes a result the way the kiosk page script reads it.
func kioskBody(res *services.KioskResult) gin.H {
	switch res.Outcome {
	case services.KioskOutcomeSignedOut:
		return gin.H{
			"success":    true,
			"message":    res.Message,
			"signed_out": true,
			"unit_id":    res.UnitID,
		}
	case services.KioskOutcomeSignedIn:
		return gin.H{
			"success": true,
			"message": res.Message,
			"unit_id": res.UnitID,
		}
	case services.KioskOutcomeStatus:
		return gin.H{
			"success":      true,
			"student_id":   res.StudentID,
			"student_name": res.StudentName,
			"signed_in":    res.SignedIn,
			"unit_id":      res.UnitID,
			"units":        res.Units,
		}
	default:
		return gin.H{
			"success":      true,
			"units":        res.Units,
			"student_name": res.StudentName,
		}
	}
}

// Identify handles kiosk step one. A student who already holds a PC is
// signed out; anyone else receives the list of available PCs.
// @Summary     Identify at the kiosk
// @Tags        kiosk
// @Accept      json
// @Produce     json
// @Param       request body IdentifyRequest true "Student ID"
// @Success     200 {object} map[string]interface{} "Available units or sign-out result"
// @Failure     400 {object} ErrorResponse "Missing student ID"
// @Failure     404 {object} ErrorResponse "Student not registered"
// @Router      /kiosk/identify [post]
func (h *KioskHandler) Identify(c *gin.Context) {
	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.kioskService.Identify(req.StudentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, kioskBody(res))
}

// Finalize handles kiosk step two.
// @Summary     Claim a PC
// @Tags        kiosk
// @Accept      json
// @Produce     json
// @Param       request body FinalizeRequest true "Student and unit"
// @Success     200 {object} map[string]interface{} "Signed in"
// @Failure     400 {object} ErrorResponse "Missing input"
// @Failure     404 {object} ErrorResponse "Student not registered"
// @Failure     409 {object} ErrorResponse "Unit no longer available"
// @Router      /kiosk/finalize [post]
func (h *KioskHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.kioskService.Finalize(req.StudentID, req.UnitID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, kioskBody(res))
}

// Status reports a student's assignment without changing it.
// @Summary     Kiosk status
// @Tags        kiosk
// @Produce     json
// @Param       student_id path string true "Student ID"
// @Success     200 {object} map[string]interface{} "Assignment and available units"
// @Failure     404 {object} ErrorResponse "Student not registered"
// @Router      /kiosk/status/{student_id} [get]
func (h *KioskHandler) Status(c *gin.Context) {
	res, err := h.kioskService.Status(c.Param("student_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, kioskBody(res))
}

// SignOut releases the student's PC.
// @Summary     Sign out at the kiosk
// @Tags        kiosk
// @Accept      json
// @Produce     json
// @Param       request body IdentifyRequest true "Student ID"
// @Success     200 {object} map[string]interface{} "Signed out"
// @Failure     400 {object} ErrorResponse "Not signed in"
// @Failure     404 {object} ErrorResponse "Student not registered"
// @Router      /kiosk/sign-out [post]
func (h *KioskHandler) SignOut(c *gin.Context) {
	var req IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.kioskService.SignOut(req.StudentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, kioskBody(res))
}

// KioskPage returns the kiosk screen context.
func (h *KioskHandler) KioskPage(c *gin.Context) {
	units, err := h.kioskService.AvailableUnits()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"available_units": units,
		"flash":           popFlash(c),
	})
}

// KioskSubmit handles the kiosk form. Without a unit it is step one, with a
// unit it is step two. The page script sends X-Requested-With and gets JSON;
// a plain submit is redirected back to the kiosk with a flash message.
func (h *KioskHandler) KioskSubmit(c *gin.Context) {
	studentID := formValue(c, "student_id")
	unitID := formValue(c, "unit_id")
	ajax := isAjax(c)

	if studentID == "" && !ajax {
		redirectWithFlash(c, kioskPagePath, FlashError, "Please enter your Student ID.")
		return
	}

	var (
		res *services.KioskResult
		err error
	)
	if unitID == "" {
		res, err = h.kioskService.Identify(studentID)
	} else {
		res, err = h.kioskService.Finalize(studentID, unitID)
	}

	if ajax {
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, kioskBody(res))
		return
	}

	if err != nil {
		redirectWithFlash(c, kioskPagePath, FlashError, errorMessage(err))
		return
	}
	if res.Outcome == services.KioskOutcomeSelectUnit {
		msg := res.Message
		if len(res.Units) == 0 {
			msg = strings.TrimSpace(msg + " No PCs are available right now.")
		}
		redirectWithFlash(c, kioskPagePath, FlashInfo, msg)
		return
	}
	redirectWithFlash(c, kioskPagePath, FlashSuccess, res.Message)
}
