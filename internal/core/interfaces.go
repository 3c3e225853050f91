package core

import "context"

// LLMProvider talks to a hosted model. Errors are returned as-is.
type LLMProvider interface {
	Generate(ctx context.Context, params GenerateParams) (Generation, error)
	Name() string
}

// Generator never fails: upstream errors become a fallback Generation.
type Generator interface {
	Generate(ctx context.Context, params GenerateParams) Generation
}

type Embedder interface {
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
	EncodePassage(ctx context.Context, text string) ([][]float32, error)
}

type KnowledgeRepository interface {
	GetEntry(ctx context.Context, category, entityKey string) (Attributes, error)
	SaveEntry(ctx context.Context, entry KnowledgeEntry) error
}

// KnowledgeLookup returns an empty sheet on absence or failure.
type KnowledgeLookup interface {
	Lookup(ctx context.Context, category, entityKey string) Attributes
}

type VectorIndex interface {
	Upsert(ctx context.Context, records []VectorRecord) error
	Query(ctx context.Context, vector []float32, topK int, minScore float64) ([]VectorMatch, error)
}

// Retriever returns formatted snippets, or nil when retrieval fails.
type Retriever interface {
	Retrieve(ctx context.Context, keywords []string) []string
}

type CacheStore interface {
	Get(ctx context.Context, fingerprint string) (*CacheEntry, bool, error)
	Put(ctx context.Context, entry CacheEntry) error
}

type TurnRepository interface {
	AppendTurn(ctx context.Context, turn Turn) error
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}

type TarotLogRepository interface {
	LogReading(ctx context.Context, reading TarotReading) error
}

type ChartComputer interface {
	Compute(ctx context.Context, req ChartRequest) (*ChartResult, error)
}

// Handler serves one domain branch.
type Handler interface {
	Handle(ctx context.Context, req *Request) (Response, error)
}
