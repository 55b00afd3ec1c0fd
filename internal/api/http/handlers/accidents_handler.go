package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/api/dto"
	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/service"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// AccidentsHandler exposes accident reporting and review endpoints.
type AccidentsHandler struct {
	accidents *service.AccidentService
}

// NewAccidentsHandler constructs handler.
func NewAccidentsHandler(accidentService *service.AccidentService) *AccidentsHandler {
	return &AccidentsHandler{accidents: accidentService}
}

func accidentJSON(a *domain.Accident) fiber.Map {
	return fiber.Map{
		"id":         a.ID,
		"citizenId":  a.CitizenID,
		"deviceId":   a.DeviceID,
		"positionId": a.PositionID,
		"alarmTime":  a.AlarmTime.Format(time.RFC3339),
	}
}

// Report handles POST /accidents. Public: devices raise alarms without auth.
func (h *AccidentsHandler) Report(c *fiber.Ctx) error {
	var req dto.AccidentReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DeviceID == "" {
		return apperrors.NewValidationError("deviceId required", nil)
	}
	if req.AlarmTime.IsZero() {
		req.AlarmTime = time.Now()
	}

	accident, err := h.accidents.Report(c.UserContext(), service.ReportInput{
		DeviceID:   req.DeviceID,
		PositionID: req.PositionID,
		AlarmTime:  req.AlarmTime,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":         "Accident stored",
		"createdAccident": accidentJSON(accident),
	})
}

// List handles GET /accidents.
func (h *AccidentsHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	accidents, total, err := h.accidents.List(c.UserContext(), page)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(accidents))
	for _, accident := range accidents {
		items = append(items, accidentJSON(accident))
	}

	meta := dto.NewPageMeta(page, total, len(items))
	return c.JSON(fiber.Map{
		"currentPage":  meta.CurrentPage,
		"totalItems":   meta.TotalItems,
		"totalPages":   meta.TotalPages,
		"itemsPerPage": meta.ItemsPerPage,
		"accidents":    items,
	})
}

// Delete handles DELETE /accidents/:accidentId.
func (h *AccidentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.accidents.Delete(c.UserContext(), c.Params("accidentId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Accident deleted"})
}
