package model

import "context"

// ContentStore accepts binary payloads and returns content-derived references.
// Implementations are selected at construction time; the degraded mirror
// implementation marks its references with a recognizable prefix so operators
// can detect records issued while the real store was unreachable.
type ContentStore interface {
	Store(ctx context.Context, data []byte) (string, error)
	Exists(ctx context.Context, ref string) (bool, error)
}
