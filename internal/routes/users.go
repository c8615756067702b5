package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rollcall/rollcall/internal/user"
)

// RegisterUserRoutes wires the registration, listing and deletion endpoints.
func RegisterUserRoutes(r fiber.Router, h *user.Handler) {
	r.Post("/register", h.Register)
	r.Get("/users", h.List)
	r.Delete("/users/:id", h.Delete)
}
