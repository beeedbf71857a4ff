package services

import (
	"strings"

	"zezim/internal/models"
)

// Headers for the composed system instruction, in Portuguese to match the
// assistant's audience.
const (
	personaHeader = "INSTRUÇÕES DE PERSONALIDADE:"

	contextOnlyHeader = "INSTRUÇÕES DE CONTEXTO:\n" +
		"Você deve responder SOMENTE com base nos documentos abaixo. " +
		"Se a resposta não estiver nos documentos, diga que não tem essa informação."

	contextBothHeader = "INSTRUÇÕES DE CONTEXTO:\n" +
		"Use os documentos abaixo como fonte principal. Você pode complementar com " +
		"conhecimento geral desde que não contradiga os documentos, e deve sinalizar " +
		"explicitamente sempre que fizer isso."

	documentSeparator = "\n\n---\n\n"
)

// ComposeInstruction builds the system turn that seeds a conversation.
// Unprivileged sessions always get the default persona with no context,
// regardless of what the administrator configured. The output is
// deterministic for a given input.
func ComposeInstruction(privileged bool, snap models.Settings) string {
	if !privileged {
		snap = models.Settings{Persona: DefaultPersona, Mode: models.ModeNoContext}
	}

	persona := snap.Persona
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}

	blocks := []string{personaHeader + "\n" + persona}

	withContext := snap.Mode == models.ModeContext || snap.Mode == models.ModeBoth
	if withContext && len(snap.Documents) > 0 {
		header := contextOnlyHeader
		if snap.Mode == models.ModeBoth {
			header = contextBothHeader
		}

		rendered := make([]string, 0, len(snap.Documents))
		for _, doc := range snap.Documents {
			rendered = append(rendered, "FILE: "+doc.Name+"\n\n"+doc.Text)
		}

		blocks = append(blocks, header+"\n\n"+strings.Join(rendered, documentSeparator))
	}

	return strings.Join(blocks, "\n\n")
}
