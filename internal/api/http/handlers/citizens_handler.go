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

// CitizensHandler exposes citizen signup/login and admin-side CRUD.
type CitizensHandler struct {
	auth     *service.AuthService
	citizens *service.CitizenService
}

// NewCitizensHandler constructs handler.
func NewCitizensHandler(authService *service.AuthService, citizenService *service.CitizenService) *CitizensHandler {
	return &CitizensHandler{auth: authService, citizens: citizenService}
}

func citizenJSON(c *domain.Citizen) fiber.Map {
	return fiber.Map{
		"id":        c.ID,
		"name":      c.Name,
		"birthdate": c.Birthdate.Format("2006-01-02"),
		"deviceId":  c.DeviceID,
		"address": fiber.Map{
			"postal": c.Address.Postal,
			"street": c.Address.Street,
			"city":   c.Address.City,
		},
		"phone": c.Phone,
		"email": c.Email,
	}
}

// Signup handles POST /citizens/signup.
func (h *CitizensHandler) Signup(c *fiber.Ctx) error {
	var req dto.CitizenSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.DeviceID == "" {
		return apperrors.NewValidationError("name, email, password, deviceId required", nil)
	}

	birthdate := time.Time{}
	if req.Birthdate != "" {
		parsed, err := dto.ParseDate(req.Birthdate)
		if err != nil {
			return apperrors.NewValidationError("invalid birthdate", nil)
		}
		birthdate = parsed
	}

	citizen, err := h.auth.RegisterCitizen(c.UserContext(), service.CitizenSignupInput{
		Name:      req.Name,
		Birthdate: birthdate,
		DeviceID:  req.DeviceID,
		Address:   domain.Address{Postal: req.Address.Postal, Street: req.Address.Street, City: req.Address.City},
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "citizen created",
		"id":      citizen.ID,
		"citizen": citizenJSON(citizen),
	})
}

// Login handles POST /citizens/login.
func (h *CitizensHandler) Login(c *fiber.Ctx) error {
	var req dto.CitizenLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	citizen, token, exp, err := h.auth.LoginCitizen(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Authorization successful",
		"id":      citizen.ID,
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// List handles GET /citizens.
func (h *CitizensHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	citizens, total, err := h.citizens.List(c.UserContext(), page)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(citizens))
	for _, citizen := range citizens {
		items = append(items, citizenJSON(citizen))
	}

	meta := dto.NewPageMeta(page, total, len(items))
	return c.JSON(fiber.Map{
		"currentPage":  meta.CurrentPage,
		"totalItems":   meta.TotalItems,
		"totalPages":   meta.TotalPages,
		"itemsPerPage": meta.ItemsPerPage,
		"citizens":     items,
	})
}

// Get handles GET /citizens/:citizenId.
func (h *CitizensHandler) Get(c *fiber.Ctx) error {
	citizen, err := h.citizens.Get(c.UserContext(), c.Params("citizenId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"citizen": citizenJSON(citizen)})
}

// Patch handles PATCH /citizens/:citizenId.
func (h *CitizensHandler) Patch(c *fiber.Ctx) error {
	ops, err := dto.ParsePatchBody(c.Body())
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	affected, err := h.citizens.Patch(c.UserContext(), c.Params("citizenId"), toFieldUpdates(ops))
	if err != nil {
		return err
	}
	if affected == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"message": "Citizen updated"})
}

// Delete handles DELETE /citizens/:citizenId.
func (h *CitizensHandler) Delete(c *fiber.Ctx) error {
	if err := h.citizens.Delete(c.UserContext(), c.Params("citizenId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Citizen deleted"})
}
