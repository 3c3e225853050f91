package rag

import "context"

// DualEncoder embeds queries and passages, possibly with different instructions.
type DualEncoder interface {
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
	EncodePassage(ctx context.Context, text string) ([]float32, error)
	Shutdown() error
}
