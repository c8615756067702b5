package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the registration HTTP surface.
type Handler struct {
	service *Service
}

// NewHandler constructs a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// registerRequest accepts age as either a JSON number or a numeric string,
// matching what the registration form submits.
type registerRequest struct {
	Name  string      `json:"name"`
	Age   json.Number `json:"age"`
	Email string      `json:"email"`
	Phone string      `json:"phone"`
	DOB   string      `json:"dob"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
}

// errorResponse is the failure envelope: a user-safe message plus the
// offending field when the failure is attributable, null otherwise.
type errorResponse struct {
	Error string  `json:"error"`
	Field *string `json:"field"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Age:         u.Age,
		Email:       u.Email,
		PhoneNumber: u.Phone,
		DateOfBirth: u.DateOfBirth.Format(DateFormat),
	}
}

// Register handles POST /register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request body", "")
	}

	created, err := h.service.Create(c.UserContext(), RegistrationInput{
		Name:  req.Name,
		Age:   req.Age.String(),
		Email: req.Email,
		Phone: req.Phone,
		DOB:   req.DOB,
	})
	if err != nil {
		return writeOutcome(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user":    toUserResponse(created),
	})
}

// List handles GET /users.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return writeOutcome(c, err)
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"users": out})
}

// Delete handles DELETE /users/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "user id must be an integer", "")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeOutcome(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "user deleted"})
}

// writeOutcome maps an operation failure to its wire status: validation
// and conflict failures are the caller's fault, everything else is ours.
func writeOutcome(c *fiber.Ctx, err error) error {
	var uerr *Error
	if !errors.As(err, &uerr) {
		return writeError(c, http.StatusInternalServerError, "unexpected error", "")
	}

	status := http.StatusInternalServerError
	switch uerr.Kind {
	case KindValidation, KindConflict:
		status = http.StatusBadRequest
	}
	return writeError(c, status, uerr.Message, uerr.Field)
}

func writeError(c *fiber.Ctx, status int, message, field string) error {
	resp := errorResponse{Error: message}
	if field != "" {
		resp.Field = &field
	}
	return c.Status(status).JSON(resp)
}
