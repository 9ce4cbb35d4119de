package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"

	"phantomlink/internal/domain"
)

// SealSecretbox authenticated-encrypts message under key with a fresh random
// nonce. The nonce is returned inside the envelope and must travel with the
// ciphertext.
func SealSecretbox(message []byte, key domain.SharedKey) (domain.SealedEnvelope, error) {
	var env domain.SealedEnvelope
	if _, err := rand.Read(env.Nonce[:]); err != nil {
		return domain.SealedEnvelope{}, fmt.Errorf("generating nonce: %w", err)
	}
	k := [32]byte(key)
	n := [24]byte(env.Nonce)
	env.Ciphertext = secretbox.Seal(nil, message, &n, &k)
	return env, nil
}

// OpenSecretbox decrypts and authenticates one sealed envelope. Fails with
// domain.ErrAuthentication and returns no plaintext on tag mismatch, a wrong
// key or a wrong nonce.
func OpenSecretbox(env domain.SealedEnvelope, key domain.SharedKey) ([]byte, error) {
	k := [32]byte(key)
	n := [24]byte(env.Nonce)
	msg, ok := secretbox.Open(nil, env.Ciphertext, &n, &k)
	if !ok {
		return nil, domain.ErrAuthentication
	}
	return msg, nil
}
