package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/api/dto"
	"github.com/night-assist/assist-service/internal/service"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// AdminsHandler exposes admin signup/login and account management.
type AdminsHandler struct {
	auth   *service.AuthService
	admins *service.AdminService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(authService *service.AuthService, adminService *service.AdminService) *AdminsHandler {
	return &AdminsHandler{auth: authService, admins: adminService}
}

// Signup handles POST /admins/signup. Admin-guarded.
func (h *AdminsHandler) Signup(c *fiber.Ctx) error {
	var req dto.AdminSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	admin, err := h.auth.RegisterAdmin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "admin created",
		"id":      admin.ID,
	})
}

// Login handles POST /admins/login.
func (h *AdminsHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Authorization successful",
		"id":      admin.ID,
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Patch handles PATCH /admins/:adminId.
func (h *AdminsHandler) Patch(c *fiber.Ctx) error {
	ops, err := dto.ParsePatchBody(c.Body())
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	affected, err := h.admins.Patch(c.UserContext(), c.Params("adminId"), toFieldUpdates(ops))
	if err != nil {
		return err
	}
	if affected == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"message": "Admin updated"})
}

// Delete handles DELETE /admins/:adminId.
func (h *AdminsHandler) Delete(c *fiber.Ctx) error {
	if err := h.admins.Delete(c.UserContext(), c.Params("adminId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Admin deleted"})
}
