// Package crypto exposes the primitives behind the deeplink protocol.
//
// Contents
//
//   - Ephemeral X25519 key generation with RFC 7748 clamping (GenerateKeyPair)
//   - Shared-secret derivation for the session phase (DeriveSharedSecret)
//   - NaCl box seal/open for the handshake phase (SealBox, OpenBox)
//   - NaCl secretbox seal/open for the session phase (SealSecretbox,
//     OpenSecretbox)
//
// # Notes
//
// Every function is stateless and takes its inputs explicitly; key ownership
// and lifetime are the session's concern. Fixed-size array types from
// internal/domain keep key and nonce lengths honest at compile time. Callers
// should wipe secrets with memzero.Zero when a session ends.
package crypto
