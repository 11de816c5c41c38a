package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/auth"
)

// RegisterAuthRoutes wires the public onboarding and login endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, loginLimiter fiber.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", loginLimiter, h.Login)
}
