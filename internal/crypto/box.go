package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"phantomlink/internal/domain"
)

// GenerateKeyPair returns a fresh Curve25519 key pair for one connection
// attempt. The private key is clamped per RFC 7748.
func GenerateKeyPair() (domain.KeyPair, error) {
	var kp domain.KeyPair
	if _, err := rand.Read(kp.Private[:]); err != nil {
		return domain.KeyPair{}, fmt.Errorf("generating private key: %w", err)
	}
	clamp(&kp.Private)
	pub, err := curve25519.X25519(kp.Private.Slice(), curve25519.Basepoint)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("deriving public key: %w", err)
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// DeriveSharedSecret computes the symmetric key both sides use for secretbox
// sealing after the handshake: the HSalsa20 derivation NaCl box applies to
// the raw X25519 point, so it matches any peer built on a standard NaCl
// stack. Fails with domain.ErrKeyAgreement on a degenerate peer key.
func DeriveSharedSecret(priv domain.X25519Private, peerPub domain.X25519Public) (domain.SharedKey, error) {
	// X25519 rejects the all-zero output of a low-order peer point;
	// Precompute alone would not.
	if _, err := curve25519.X25519(priv.Slice(), peerPub.Slice()); err != nil {
		return domain.SharedKey{}, fmt.Errorf("%w: %v", domain.ErrKeyAgreement, err)
	}

	var shared [32]byte
	pub := [32]byte(peerPub)
	pk := [32]byte(priv)
	box.Precompute(&shared, &pub, &pk)
	return domain.SharedKey(shared), nil
}

// SealBox authenticated-encrypts message for peerPub under the asymmetric
// handshake construction. The dapp side only ever opens handshake boxes; the
// sealing direction exists for the wallet side of tests and simulations.
func SealBox(message []byte, nonce domain.Nonce, peerPub domain.X25519Public, priv domain.X25519Private) []byte {
	n := [24]byte(nonce)
	pub := [32]byte(peerPub)
	pk := [32]byte(priv)
	return box.Seal(nil, message, &n, &pub, &pk)
}

// OpenBox decrypts and authenticates a handshake message from the peer.
// Fails with domain.ErrAuthentication and returns no plaintext on any
// tampering or key mismatch.
func OpenBox(ciphertext []byte, nonce domain.Nonce, peerPub domain.X25519Public, priv domain.X25519Private) ([]byte, error) {
	n := [24]byte(nonce)
	pub := [32]byte(peerPub)
	pk := [32]byte(priv)
	msg, ok := box.Open(nil, ciphertext, &n, &pub, &pk)
	if !ok {
		return nil, domain.ErrAuthentication
	}
	return msg, nil
}

func clamp(k *domain.X25519Private) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
