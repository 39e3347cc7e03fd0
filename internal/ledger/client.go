// Package ledger anchors credential fingerprints in an append-only ledger.
//
// The client in its current form does not talk to a real ledger node: Anchor
// derives the fingerprint locally, and ConfirmAnchored attests any identifier
// whose persisted anchor reference witnesses a past successful anchoring.
// Confirmation is keyed off durable state, so it survives process restarts.
// It does not re-derive the fingerprint from the current (publicID,
// contentRef) pair, so content swapped after anchoring would not be caught.
// A production ledger must re-verify the fingerprint itself.
package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/skillpass/skillpass-server/internal/model"
)

var _ model.LedgerAnchor = (*Client)(nil)

// Client is a ledger anchor client bound to a node URL.
type Client struct {
	nodeURL string
}

// NewClient creates a ledger anchor client for the given node URL.
func NewClient(nodeURL string) *Client {
	return &Client{nodeURL: nodeURL}
}

// Anchor computes the fingerprint for (publicID, contentRef). The returned
// anchor reference is the hex-encoded digest.
func (c *Client) Anchor(ctx context.Context, publicID, contentRef string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", model.NewExternalServiceError("ledger anchoring could not be attempted", err)
	}

	digest := sha256.Sum256([]byte(publicID + contentRef))

	return hex.EncodeToString(digest[:]), nil
}

// ConfirmAnchored reports whether the identifier was anchored. A non-empty
// anchor reference witnesses a past successful Anchor call; an identifier
// without one is a false result, never an error.
func (c *Client) ConfirmAnchored(ctx context.Context, publicID, anchorRef string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, model.NewExternalServiceError("ledger confirmation could not be attempted", err)
	}

	return anchorRef != "", nil
}

// NodeURL returns the configured ledger node URL.
func (c *Client) NodeURL() string {
	return c.nodeURL
}
