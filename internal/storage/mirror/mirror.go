// Package mirror provides the degraded content store used when the real
// backend is unreachable. References are derived deterministically from the
// payload digest and carry the RefPrefix so operators can tell degraded-mode
// records apart.
package mirror

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/skillpass/skillpass-server/internal/model"
)

// RefPrefix marks references produced in mirror mode.
const RefPrefix = "mirror-"

var _ model.ContentStore = (*Store)(nil)

// Store derives content references without persisting payloads anywhere.
type Store struct{}

// NewStore creates a mirror content store.
func NewStore() *Store {
	return &Store{}
}

// Store returns a deterministic digest-derived reference for the payload.
func (s *Store) Store(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", model.ErrInvalidPayload
	}

	digest := sha256.Sum256(data)
	return RefPrefix + hex.EncodeToString(digest[:]), nil
}

// Exists reports whether the reference was produced by this store. Nothing is
// actually persisted, so prefix recognition is all that can be offered.
func (s *Store) Exists(ctx context.Context, ref string) (bool, error) {
	return strings.HasPrefix(ref, RefPrefix), nil
}
