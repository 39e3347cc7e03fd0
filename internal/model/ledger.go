package model

import "context"

// LedgerAnchor records and confirms credential fingerprints in an external
// append-only ledger. Anchor combines the public id and content reference
// through a cryptographic digest and returns an opaque reference.
// ConfirmAnchored reports whether the ledger still attests an identifier,
// given the anchor reference persisted at issuance; an identifier that was
// never anchored is a false result, not an error.
type LedgerAnchor interface {
	Anchor(ctx context.Context, publicID, contentRef string) (string, error)
	ConfirmAnchored(ctx context.Context, publicID, anchorRef string) (bool, error)
}
