package domain

import (
	"strings"
	"unicode"
)

// QueryCategory is a lexical hint about what kind of query was received.
// It steers the routing policy but is never a hard constraint.
type QueryCategory string

const (
	CategoryGreeting           QueryCategory = "greeting"
	CategoryFarewell           QueryCategory = "farewell"
	CategoryThanks             QueryCategory = "thanks"
	CategoryHelpGeneral        QueryCategory = "help_general"
	CategoryRetrievalPreferred QueryCategory = "retrieval_preferred"
	CategoryNeutral            QueryCategory = "neutral"
)

// Conversational reports whether the category always resolves through the
// intent path (greeting, farewell, thanks bypass retrieval by design).
func (c QueryCategory) Conversational() bool {
	return c == CategoryGreeting || c == CategoryFarewell || c == CategoryThanks
}

// categoryRule pairs a category with the keywords that trigger it.
// Rules are evaluated in order; the first hit wins.
type categoryRule struct {
	category QueryCategory
	keywords []string
}

// classifierRules is the fixed lexical table used by Classify.
// Kept as explicit rules rather than a learned model: the routing
// thresholds were tuned against this exact heuristic's scale.
var classifierRules = []categoryRule{
	{CategoryGreeting, []string{"hola", "buenos días", "buenas tardes", "buenas noches", "saludos", "qué tal", "cómo estás"}},
	{CategoryFarewell, []string{"adiós", "hasta luego", "chao", "bye", "nos vemos", "hasta pronto"}},
	{CategoryThanks, []string{"gracias", "agradezco", "agradecido", "muy amable"}},
	{CategoryHelpGeneral, []string{"ayuda", "ayúdame", "asistencia", "soporte", "no entiendo"}},
}

// questionWords mark queries that prefer the retrieval path when they
// appear as the leading word.
var questionWords = []string{
	"cómo", "dónde", "cuándo", "qué", "por qué", "cuál", "cuáles", "cuánto", "cuánta", "cuántos", "cuántas",
}

// Classify categorises a raw query by lexical keyword matching.
// Conversational categories are checked first, then interrogative
// detection, with neutral as the default.
func Classify(query string) QueryCategory {
	cleaned := CleanQuery(query)
	if cleaned == "" {
		return CategoryNeutral
	}

	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(cleaned, kw) {
				return rule.category
			}
		}
	}

	interrogative := strings.TrimLeft(cleaned, "¿? ")
	for _, w := range questionWords {
		if interrogative == w || strings.HasPrefix(interrogative, w+" ") {
			return CategoryRetrievalPreferred
		}
	}

	return CategoryNeutral
}

// CleanQuery normalises a query for lexical matching: lowercase, strip
// punctuation, collapse whitespace. Question marks and accented letters
// are preserved because the Spanish classifier keys on them.
func CleanQuery(query string) string {
	lowered := strings.ToLower(query)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '?' || r == '¿':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
