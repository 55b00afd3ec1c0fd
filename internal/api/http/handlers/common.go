package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/api/dto"
	"github.com/night-assist/assist-service/internal/repository"
	"github.com/night-assist/assist-service/internal/service"
)

// pageFromQuery reads the optional page/limit query values. Absent or
// unparseable values disable pagination.
func pageFromQuery(c *fiber.Ctx) repository.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return repository.PageRequest{Page: page, Limit: limit}
}

func toFieldUpdates(ops []dto.PatchOp) []service.FieldUpdate {
	updates := make([]service.FieldUpdate, 0, len(ops))
	for _, op := range ops {
		updates = append(updates, service.FieldUpdate{PropName: op.PropName, Value: op.Value})
	}
	return updates
}
