// Package wallet generates wallet-style addresses assigned at registration.
package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AddressPrefix marks skillpass wallet addresses.
const AddressPrefix = "spw1"

// NewAddress generates a fresh keypair and returns the address derived from
// the public key. The private key is discarded; the address only serves as a
// stable public identifier for the user.
func NewAddress() (string, error) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate keypair: %w", err)
	}
	return AddressPrefix + hex.EncodeToString(pub), nil
}
