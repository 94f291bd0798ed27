package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  QueryCategory
	}{
		{"simple greeting", "hola", CategoryGreeting},
		{"greeting with punctuation", "¡Hola! ¿cómo estás?", CategoryGreeting},
		{"formal greeting", "Buenos días", CategoryGreeting},
		{"farewell", "adiós, hasta mañana", CategoryFarewell},
		{"informal farewell", "nos vemos", CategoryFarewell},
		{"thanks", "muchas gracias", CategoryThanks},
		{"help request", "necesito ayuda", CategoryHelpGeneral},
		{"how question", "¿Cómo me inscribo al módulo?", CategoryRetrievalPreferred},
		{"quantity question", "¿Cuánto dura el módulo?", CategoryRetrievalPreferred},
		{"what question", "qué temas cubre el curso", CategoryRetrievalPreferred},
		{"which question", "¿Cuáles son los requisitos?", CategoryRetrievalPreferred},
		{"statement", "el módulo de matemáticas", CategoryNeutral},
		{"empty", "", CategoryNeutral},
		{"nonsense", "xkzpd qwerty", CategoryNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Conversational categories win over interrogative detection:
	// "¿cómo estás?" starts with a question word but is a greeting.
	assert.Equal(t, CategoryGreeting, Classify("¿cómo estás?"))
}

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"lowercases", "HOLA", "hola"},
		{"strips punctuation", "hola, ¿qué tal!", "hola ¿qué tal"},
		{"keeps question marks", "¿cuánto dura?", "¿cuánto dura?"},
		{"keeps accents", "duración del módulo", "duración del módulo"},
		{"collapses whitespace", "  hola   mundo  ", "hola mundo"},
		{"keeps digits", "aula 42", "aula 42"},
		{"empty", "", ""},
		{"only punctuation", "...!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanQuery(tt.query))
		})
	}
}
