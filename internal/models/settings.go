package models

// Mode controls how uploaded documents participate in the system instruction
type Mode string

const (
	// ModeNoContext ignores uploaded documents entirely
	ModeNoContext Mode = "no_context"
	// ModeContext restricts answers to the uploaded documents
	ModeContext Mode = "context"
	// ModeBoth uses documents as the primary source, general knowledge as a flagged supplement
	ModeBoth Mode = "both"
)

// ParseMode maps a raw form value to a Mode. Unrecognized values degrade to
// ModeNoContext instead of being rejected.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeContext:
		return ModeContext
	case ModeBoth:
		return ModeBoth
	default:
		return ModeNoContext
	}
}

// Document is an administrator-uploaded text extract used as contextual grounding
type Document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"-"` // never serialized in listings
}

// Settings is an immutable snapshot of the administrator configuration.
// Version increases monotonically on every mutation; conversations record the
// version they were built from and rebuild when it changes.
type Settings struct {
	Persona   string
	Mode      Mode
	Documents []Document
	Version   int64
}

// HomeState is the rendered state for the home view
type HomeState struct {
	LoggedIn    bool       `json:"logged_in"`
	PersonaText string     `json:"persona_text"`
	Mode        Mode       `json:"mode"`
	Documents   []Document `json:"documents"`
	HasContext  bool       `json:"has_context"`
}

// LoginRequest is the request body for admin authentication
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
