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

// TimestampsHandler exposes device check-in endpoints.
type TimestampsHandler struct {
	timestamps *service.TimestampService
}

// NewTimestampsHandler constructs handler.
func NewTimestampsHandler(timestampService *service.TimestampService) *TimestampsHandler {
	return &TimestampsHandler{timestamps: timestampService}
}

func timestampJSON(ts *domain.Timestamp) fiber.Map {
	return fiber.Map{
		"id":         ts.ID,
		"citizenId":  ts.CitizenID,
		"deviceId":   ts.DeviceID,
		"positionId": ts.PositionID,
		"startTime":  ts.StartTime.Format(time.RFC3339),
		"endTime":    ts.EndTime.Format(time.RFC3339),
	}
}

// Create handles POST /timestamps. Public: devices report without auth.
func (h *TimestampsHandler) Create(c *fiber.Ctx) error {
	var req dto.TimestampCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DeviceID == "" {
		return apperrors.NewValidationError("deviceId required", nil)
	}

	ts, err := h.timestamps.Record(c.UserContext(), service.RecordInput{
		DeviceID:   req.DeviceID,
		PositionID: req.PositionID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":          "Timestamp stored",
		"createdTimestamp": timestampJSON(ts),
	})
}

// List handles GET /timestamps.
func (h *TimestampsHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	timestamps, total, err := h.timestamps.List(c.UserContext(), page)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(timestamps))
	for _, ts := range timestamps {
		items = append(items, timestampJSON(ts))
	}

	meta := dto.NewPageMeta(page, total, len(items))
	return c.JSON(fiber.Map{
		"currentPage":  meta.CurrentPage,
		"totalItems":   meta.TotalItems,
		"totalPages":   meta.TotalPages,
		"itemsPerPage": meta.ItemsPerPage,
		"timestamps":   items,
	})
}

// Get handles GET /timestamps/:timestampId.
func (h *TimestampsHandler) Get(c *fiber.Ctx) error {
	ts, err := h.timestamps.Get(c.UserContext(), c.Params("timestampId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"timestamp": timestampJSON(ts)})
}

// ListByCitizen handles GET /timestamps/by-citizen/:id where the path
// value may be a citizen id or a device id.
func (h *TimestampsHandler) ListByCitizen(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	timestamps, total, err := h.timestamps.ListByCitizen(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(timestamps))
	for _, ts := range timestamps {
		items = append(items, timestampJSON(ts))
	}

	meta := dto.NewPageMeta(page, total, len(items))
	return c.JSON(fiber.Map{
		"currentPage":  meta.CurrentPage,
		"totalItems":   meta.TotalItems,
		"totalPages":   meta.TotalPages,
		"itemsPerPage": meta.ItemsPerPage,
		"timestamps":   items,
	})
}

// Delete handles DELETE /timestamps/:timestampId.
func (h *TimestampsHandler) Delete(c *fiber.Ctx) error {
	if err := h.timestamps.Delete(c.UserContext(), c.Params("timestampId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "timestamp deleted"})
}
