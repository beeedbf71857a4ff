package handlers

import (
	"github.com/gofiber/fiber/v2"

	"zezim/internal/models"
	"zezim/internal/services"
)

// HomeHandler serves the home view state
type HomeHandler struct {
	settings *services.SettingsService
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(settings *services.SettingsService) *HomeHandler {
	return &HomeHandler{settings: settings}
}

// GetHome returns the effective state for this session: privilege flag,
// persona, mode and document list. Unprivileged sessions see the defaults,
// never the administrator-authored configuration.
// GET /
func (h *HomeHandler) GetHome(c *fiber.Ctx) error {
	privileged, _ := c.Locals("privileged").(bool)

	state := models.HomeState{
		LoggedIn:    privileged,
		PersonaText: services.DefaultPersona,
		Mode:        models.ModeNoContext,
		Documents:   []models.Document{},
	}

	if privileged {
		snap := h.settings.Snapshot()
		state.PersonaText = snap.Persona
		state.Mode = snap.Mode
		state.Documents = snap.Documents
		state.HasContext = len(snap.Documents) > 0
	}

	return c.JSON(state)
}
