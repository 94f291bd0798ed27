package services

import (
	"context"
	"math/rand"
	"strings"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// minPassageLength is the shortest passage worth answering from.
const minPassageLength = 20

// readerScoreThreshold gates extractive answers: spans scored at or
// below it fall back to template extraction.
const readerScoreThreshold = 0.3

// minSpanLength rejects trivially short extracted spans.
const minSpanLength = 10

// Generator renders the final answer text from retrieval evidence.
//
// Implementations never return an error to the router: a generation
// problem degrades to a less ambitious rendering, not a failure.
type Generator interface {
	// FromRetrieval synthesises an answer from the ordered match list.
	FromRetrieval(ctx context.Context, query string, matches []domain.DocumentMatch) string

	// Fallback produces the out-of-scope apology for the query.
	Fallback(query string) string
}

// fallbackResponses are the out-of-scope apologies, chosen at random.
// %s is replaced by the original query where present.
var fallbackResponses = []string{
	"No encontré información específica sobre '%s' en los materiales del módulo. Mis conocimientos están enfocados en el contenido del módulo propedéutico.",
	"Esa pregunta parece estar fuera del alcance de mis materiales actuales. ¿Hay algo relacionado con el módulo propedéutico en lo que pueda ayudarte?",
	"Actualmente no tengo información suficiente sobre ese tema. Te recomiendo consultar los materiales oficiales del módulo o preguntar a tu tutor.",
	"Mis conocimientos se centran en el módulo propedéutico. ¿Podrías reformular tu pregunta para que esté relacionada con el contenido del módulo?",
}

// genericFollowUps close a templated answer when the topic is unknown.
var genericFollowUps = []string{
	"\n\n¿Esta información responde a tu pregunta?",
	"\n\n¿Necesitas más detalles sobre este tema?",
	"\n\n¿Hay algún aspecto específico que te gustaría que amplíe?",
}

// questionPrefix classifies the question and returns the answer lead-in.
type questionPrefix struct {
	keywords []string
	prefix   string
}

var questionPrefixes = []questionPrefix{
	{
		keywords: []string{"qué", "defin", "concepto", "significa"},
		prefix:   "Según los materiales del módulo:\n\n",
	},
	{
		keywords: []string{"cómo", "procedimiento", "pasos", "metodología"},
		prefix:   "El procedimiento descrito en los materiales es:\n\n",
	},
	{
		keywords: []string{"cuánto", "cuántos", "cuántas", "duración", "tiempo", "fecha"},
		prefix:   "En relación a tu consulta sobre cantidades o tiempos:\n\n",
	},
}

// topicFollowUps are used when the query names a known subject.
var topicFollowUps = []struct {
	keywords []string
	followUp string
}{
	{
		keywords: []string{"matemáticas", "matematica"},
		followUp: "\n\n¿Necesitas ayuda con algún ejercicio específico de matemáticas?",
	},
	{
		keywords: []string{"física", "fisica"},
		followUp: "\n\n¿Te gustaría profundizar en algún concepto de física?",
	},
	{
		keywords: []string{"química", "quimica"},
		followUp: "\n\n¿Hay algún tema de química en el que necesites más ayuda?",
	},
}

// Ensure TemplateGenerator implements the interface.
var _ Generator = (*TemplateGenerator)(nil)

// TemplateGenerator synthesises answers by sentence extraction from the
// best retrieved passage, with a question-type prefix and a follow-up.
// It is the terminal generation tier and never fails.
type TemplateGenerator struct {
	// rand picks among candidate strings; injectable for tests.
	rand *rand.Rand
}

// NewTemplateGenerator creates a template-based generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// pick returns a uniformly random element of options.
func (g *TemplateGenerator) pick(options []string) string {
	if g.rand != nil {
		return options[g.rand.Intn(len(options))]
	}
	return options[rand.Intn(len(options))]
}

// FromRetrieval renders an answer from the ordered match list by
// sentence extraction.
func (g *TemplateGenerator) FromRetrieval(ctx context.Context, query string, matches []domain.DocumentMatch) string {
	passage, ok := g.selectPassage(matches)
	if !ok {
		return "Encontré información pero no es suficientemente relevante para tu pregunta."
	}

	questionLower := strings.ToLower(query)

	response := "Encontramos esta información relevante en los materiales:\n\n"
	for _, qp := range questionPrefixes {
		if containsAny(questionLower, qp.keywords) {
			response = qp.prefix
			break
		}
	}

	response += extractSentences(passage)
	if !strings.HasSuffix(response, ".") {
		response += "."
	}

	response += g.followUp(questionLower)
	return response
}

// selectPassage returns the best passage that is long enough to answer
// from, preferring the top match and falling back to the second.
func (g *TemplateGenerator) selectPassage(matches []domain.DocumentMatch) (string, bool) {
	for i, m := range matches {
		if i >= 2 {
			break
		}
		if len(strings.TrimSpace(m.Text)) >= minPassageLength {
			return m.Text, true
		}
	}
	return "", false
}

// extractSentences takes the first one or two non-trivial sentence-like
// segments of the passage.
func extractSentences(passage string) string {
	parts := strings.Split(passage, ". ")
	var sentences []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minPassageLength {
			sentences = append(sentences, p)
		}
		if len(sentences) == 2 {
			break
		}
	}
	if len(sentences) == 0 {
		// No segment qualifies on its own; use the passage verbatim.
		sentences = []string{passage}
	}
	return strings.Join(sentences, ". ")
}

// followUp returns a topic-aware follow-up question when the query names
// a known subject, else a random generic one.
func (g *TemplateGenerator) followUp(questionLower string) string {
	for _, tf := range topicFollowUps {
		if containsAny(questionLower, tf.keywords) {
			return tf.followUp
		}
	}
	return g.pick(genericFollowUps)
}

// Fallback produces the out-of-scope apology for the query.
func (g *TemplateGenerator) Fallback(query string) string {
	chosen := g.pick(fallbackResponses)
	return strings.Replace(chosen, "%s", query, 1)
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Ensure ReaderGenerator implements the interface.
var _ Generator = (*ReaderGenerator)(nil)

// ReaderGenerator consults an extractive QA model first and delegates to
// a template generator whenever the model is unavailable, errors, or
// returns a low-confidence or trivial span. Model errors never surface
// to the caller.
type ReaderGenerator struct {
	reader   driven.Reader
	template Generator
}

// NewReaderGenerator composes a model-backed generator over the given
// terminal generator.
func NewReaderGenerator(reader driven.Reader, template Generator) *ReaderGenerator {
	return &ReaderGenerator{
		reader:   reader,
		template: template,
	}
}

// FromRetrieval tries the QA model on the top passages and accepts its
// span only when it clears the confidence and triviality gates.
func (g *ReaderGenerator) FromRetrieval(ctx context.Context, query string, matches []domain.DocumentMatch) string {
	if g.reader == nil || len(matches) == 0 {
		return g.template.FromRetrieval(ctx, query, matches)
	}

	// Combine up to the two best passages into one context.
	var passages []string
	for i, m := range matches {
		if i >= 2 {
			break
		}
		passages = append(passages, m.Text)
	}
	combined := strings.Join(passages, "\n\n")

	span, err := g.reader.Extract(ctx, query, combined)
	if err != nil {
		logger.Warn("Reader failed, using template extraction: %v", err)
		return g.template.FromRetrieval(ctx, query, matches)
	}

	answer := strings.TrimSpace(span.Text)
	if span.Score <= readerScoreThreshold || !plausibleSpan(answer) {
		logger.Debug("Reader span rejected (score: %.3f, text: %q)", span.Score, answer)
		return g.template.FromRetrieval(ctx, query, matches)
	}

	if !strings.HasSuffix(answer, ".") {
		answer += "."
	}
	return answer
}

// plausibleSpan rejects empty, punctuation-only, or trivially short spans.
func plausibleSpan(answer string) bool {
	if len([]rune(answer)) <= minSpanLength {
		return false
	}
	trimmed := strings.Trim(answer, ".,;:-– ")
	return trimmed != ""
}

// Fallback delegates to the terminal generator.
func (g *ReaderGenerator) Fallback(query string) string {
	return g.template.Fallback(query)
}
