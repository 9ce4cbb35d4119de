package domain

import (
	"errors"
	"fmt"
)

// Protocol error taxonomy. Every terminal outcome of a connect or sign
// exchange maps to exactly one of these; nothing else crosses the session
// boundary.
var (
	// ErrInvalidCharacter reports a character outside the base58 alphabet.
	ErrInvalidCharacter = errors.New("invalid base58 character")

	// ErrKeyAgreement reports a failed X25519 derivation (malformed peer key).
	ErrKeyAgreement = errors.New("key agreement failed")

	// ErrAuthentication reports an authenticated-decryption failure. No
	// plaintext is ever returned alongside it.
	ErrAuthentication = errors.New("authentication failed")

	// ErrURLConstruction reports that a request URL could not be assembled.
	ErrURLConstruction = errors.New("url construction failed")

	// ErrMalformedResponse reports a response URL missing required parameters.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMalformedPayload reports a decrypted payload missing required fields.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrNotConnected reports an operation that requires an established
	// session, or a response arriving after the key material was wiped.
	ErrNotConnected = errors.New("not connected")

	// ErrHandshakeFailed reports that the connect response could not be
	// opened against the current ephemeral keypair.
	ErrHandshakeFailed = errors.New("handshake failed")

	// ErrDecryptionFailed reports that a sign response could not be opened
	// with the session key.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// PeerRejectedError carries the wallet's own error code and message,
// verbatim, when it declines a request.
type PeerRejectedError struct {
	Code    string
	Message string
}

func (e *PeerRejectedError) Error() string {
	return fmt.Sprintf("peer rejected request: %s (code %s)", e.Message, e.Code)
}
