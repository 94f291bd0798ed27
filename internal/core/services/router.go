package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// Ensure RouterService implements the interface.
var _ driving.QueryService = (*RouterService)(nil)

// Decision thresholds tuned against the synthetic intent distances.
const (
	// intentTopK is how many intent candidates the router inspects.
	intentTopK = 3

	// strictIntentThreshold gates intent acceptance for queries that
	// look like content questions. Only a pattern-level match clears it.
	strictIntentThreshold = 0.3

	// looseIntentThreshold gates intent acceptance for neutral and
	// help queries.
	looseIntentThreshold = 0.5

	// maxIntentQueryLength pushes long queries to retrieval even when
	// an intent matched loosely. Long queries are assumed substantive.
	maxIntentQueryLength = 100

	// defaultRetrievalTopK is the document search width when the
	// configuration does not set one.
	defaultRetrievalTopK = 3

	// defaultEmbedTimeout bounds the query embedding call. On expiry
	// the query degrades to the fallback reply.
	defaultEmbedTimeout = 30 * time.Second
)

// RouterService decides, per query, whether to answer from the intent
// table or from document retrieval, and resolves the reply.
//
// The router is stateless between queries and never returns an error:
// any internal failure degrades to the fallback reply with zero
// confidence.
type RouterService struct {
	intents   driven.IntentIndex
	index     driven.DocumentIndex
	embedding driven.EmbeddingService
	generator Generator
	history   driven.HistoryStore

	retrievalTopK int
	embedTimeout  time.Duration
	rand          *rand.Rand
}

// RouterOption configures a RouterService.
type RouterOption func(*RouterService)

// WithRetrievalTopK sets the document search width.
func WithRetrievalTopK(k int) RouterOption {
	return func(s *RouterService) {
		if k > 0 {
			s.retrievalTopK = k
		}
	}
}

// WithEmbedTimeout bounds the query embedding call.
func WithEmbedTimeout(d time.Duration) RouterOption {
	return func(s *RouterService) {
		if d > 0 {
			s.embedTimeout = d
		}
	}
}

// WithHistory enables best-effort journaling of routing decisions.
func WithHistory(store driven.HistoryStore) RouterOption {
	return func(s *RouterService) {
		s.history = store
	}
}

// NewRouterService creates a query router. The generator must not be
// nil; the history store is optional.
func NewRouterService(
	intents driven.IntentIndex,
	index driven.DocumentIndex,
	embedding driven.EmbeddingService,
	generator Generator,
	opts ...RouterOption,
) *RouterService {
	s := &RouterService{
		intents:       intents,
		index:         index,
		embedding:     embedding,
		generator:     generator,
		retrievalTopK: defaultRetrievalTopK,
		embedTimeout:  defaultEmbedTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask resolves a single query through the decision pipeline:
// classify, evaluate intents, accept or fall through to retrieval,
// then generate. It never returns an error.
func (s *RouterService) Ask(ctx context.Context, query string) domain.Reply {
	logger.Section("Query Routing")
	logger.Debug("Query: %q", query)

	category := domain.Classify(query)
	logger.Debug("Category: %s", category)

	cleaned := domain.CleanQuery(query)
	intentMatches := s.intents.Match(cleaned, intentTopK)
	logger.Debug("Intent candidates: %d", len(intentMatches))

	reply := s.resolve(ctx, query, category, intentMatches)
	s.record(ctx, query, category, reply)
	return reply
}

// resolve applies the accept/reject policy and renders the reply.
func (s *RouterService) resolve(
	ctx context.Context,
	query string,
	category domain.QueryCategory,
	intentMatches []domain.IntentMatch,
) domain.Reply {
	if s.acceptIntent(category, query, intentMatches) {
		if len(intentMatches) == 0 {
			// Conversational category but the intent table is empty.
			// These queries never fall through to document search.
			logger.Warn("Conversational query with no loaded intents")
			return s.fallback(query)
		}
		return s.fromIntent(intentMatches[0])
	}
	return s.retrieve(ctx, query)
}

// acceptIntent decides whether the intent path wins.
func (s *RouterService) acceptIntent(
	category domain.QueryCategory,
	query string,
	matches []domain.IntentMatch,
) bool {
	// Greetings, farewells and thanks always take the intent path;
	// they must never reach document search.
	if category.Conversational() {
		return true
	}
	if len(matches) == 0 {
		return false
	}

	best := matches[0].Distance
	if category == domain.CategoryRetrievalPreferred {
		// Content questions need a near-exact intent match, otherwise
		// the intent table would steal legitimate material questions.
		return best < strictIntentThreshold
	}
	return best < looseIntentThreshold && len([]rune(query)) < maxIntentQueryLength
}

// fromIntent renders an accepted intent: a uniformly random pick among
// its candidate responses.
func (s *RouterService) fromIntent(match domain.IntentMatch) domain.Reply {
	logger.Info("Intent accepted: %s (distance %.2f)", match.Intent.Tag, match.Distance)

	responses := match.Intent.Responses
	text := "¿En qué más puedo ayudarte?"
	if len(responses) > 0 {
		text = responses[s.intn(len(responses))]
	}

	confidence := 1 - match.Distance
	if confidence < 0 {
		confidence = 0
	}
	return domain.Reply{
		Text:       text,
		Confidence: confidence,
	}
}

// retrieve embeds the raw query and searches the document index.
func (s *RouterService) retrieve(ctx context.Context, query string) domain.Reply {
	logger.Debug("Intent rejected, running retrieval")

	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vector, err := s.embedding.Embed(embedCtx, query)
	if err != nil {
		logger.Warn("Embedding failed: %v", err)
		return s.fallback(query)
	}
	domain.Normalize(vector)

	result, err := s.index.Search(ctx, vector, s.retrievalTopK)
	if err != nil {
		logger.Warn("Document search failed: %v", err)
		return s.fallback(query)
	}
	if result.Empty() {
		logger.Info("No documents matched")
		return s.fallback(query)
	}

	best := result.Best()
	logger.Info("Retrieval hit: distance %.4f", best.Distance)

	evidence := make([]domain.Evidence, 0, domain.MaxEvidence)
	for i, m := range result.Matches {
		if i >= domain.MaxEvidence {
			break
		}
		evidence = append(evidence, domain.NewEvidence(m))
	}

	return domain.Reply{
		Text:          s.generator.FromRetrieval(ctx, query, result.Matches),
		UsedRetrieval: true,
		Confidence:    domain.Similarity(best.Distance),
		Evidence:      evidence,
	}
}

// fallback renders the generic apology with zero confidence.
func (s *RouterService) fallback(query string) domain.Reply {
	return domain.Reply{
		Text: s.generator.Fallback(query),
	}
}

// record journals the decision; failures are logged, never surfaced.
func (s *RouterService) record(
	ctx context.Context,
	query string,
	category domain.QueryCategory,
	reply domain.Reply,
) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, driven.HistoryEntry{
		Query:         query,
		Category:      category,
		UsedRetrieval: reply.UsedRetrieval,
		Confidence:    reply.Confidence,
		Answer:        reply.Text,
	})
	if err != nil {
		logger.Warn("History record failed: %v", err)
	}
}

// intn picks a uniform index; injectable for tests.
func (s *RouterService) intn(n int) int {
	if s.rand != nil {
		return s.rand.Intn(n)
	}
	return rand.Intn(n)
}
