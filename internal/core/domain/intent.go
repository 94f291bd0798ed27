package domain

// Intent is a curated canned-response unit. Intents are loaded wholesale
// from an external definition, are immutable during a process lifetime,
// and are replaced wholesale on reload, never partially updated.
type Intent struct {
	// Tag is the short label identifying the intent (e.g. "saludo").
	Tag string `json:"tag"`

	// Patterns is the ordered list of example trigger phrases.
	Patterns []string `json:"patterns"`

	// Responses is the list of candidate reply strings. One is chosen
	// uniformly at random when the intent resolves a query.
	Responses []string `json:"responses"`

	// Context is a free-form label grouping related intents.
	Context string `json:"context"`
}

// IntentSet matches the external definition shape:
// {"intents": [{"tag", "patterns", "responses", "context"}]}.
type IntentSet struct {
	Intents []Intent `json:"intents"`
}

// DefaultIntentSet returns the minimal built-in fallback table used when
// no intent definition source is available. The system must never operate
// with zero intents.
func DefaultIntentSet() IntentSet {
	return IntentSet{
		Intents: []Intent{
			{
				Tag:       "saludo",
				Patterns:  []string{"hola", "buenos días", "buenas tardes"},
				Responses: []string{"¡Hola! ¿En qué puedo ayudarte?"},
				Context:   "welcome",
			},
		},
	}
}
