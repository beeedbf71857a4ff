package handlers

import (
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"zezim/internal/services"
	"zezim/internal/utils"
)

// AdminHandler handles configuration updates and document management.
// All routes are mounted behind the RequireAdmin middleware.
type AdminHandler struct {
	settings *services.SettingsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(settings *services.SettingsService) *AdminHandler {
	return &AdminHandler{settings: settings}
}

// UpdateConfig applies persona and mode changes and ingests uploaded context
// files. A file with an unsupported extension is reported as a warning without
// aborting the rest of the batch.
// POST /config (multipart form: persona_text, mode, context_files)
func (h *AdminHandler) UpdateConfig(c *fiber.Ctx) error {
	persona := c.FormValue("persona_text")
	mode := c.FormValue("mode")

	h.settings.Update(persona, mode)

	var warnings []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fileHeader := range form.File["context_files"] {
			if fileHeader.Filename == "" {
				continue
			}

			if !utils.AllowedFile(fileHeader.Filename) {
				warnings = append(warnings, fmt.Sprintf("Formato inválido: %s. Use .txt ou .pdf", fileHeader.Filename))
				continue
			}

			file, err := fileHeader.Open()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Falha ao ler o arquivo: %s", fileHeader.Filename))
				continue
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Falha ao ler o arquivo: %s", fileHeader.Filename))
				continue
			}

			text, err := utils.ExtractText(data, utils.FileExtension(fileHeader.Filename))
			if err != nil {
				log.Printf("⚠️  Text extraction failed for %s: %v", fileHeader.Filename, err)
				warnings = append(warnings, fmt.Sprintf("Falha ao extrair texto de: %s", fileHeader.Filename))
				continue
			}

			h.settings.AddDocument(fileHeader.Filename, text)
		}
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"warnings": warnings,
	})
}

// RemoveDocument removes a context document by id.
// DELETE /api/documents/:id
func (h *AdminHandler) RemoveDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Document ID is required",
		})
	}

	if !h.settings.RemoveDocument(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Documento não encontrado",
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
