package crypto_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"phantomlink/internal/crypto"
	"phantomlink/internal/domain"
)

func makeKeyPair(t *testing.T) domain.KeyPair {
	t.Helper()
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return kp
}

func TestDeriveSharedSecretCommutes(t *testing.T) {
	alice := makeKeyPair(t)
	bob := makeKeyPair(t)

	aliceShared, err := crypto.DeriveSharedSecret(alice.Private, bob.Public)
	if err != nil {
		t.Fatalf("DeriveSharedSecret (alice): %v", err)
	}
	bobShared, err := crypto.DeriveSharedSecret(bob.Private, alice.Public)
	if err != nil {
		t.Fatalf("DeriveSharedSecret (bob): %v", err)
	}
	if aliceShared != bobShared {
		t.Fatal("shared secrets differ")
	}
	if aliceShared == (domain.SharedKey{}) {
		t.Fatal("shared secret is all zero")
	}
}

func TestDeriveSharedSecretRejectsLowOrderKey(t *testing.T) {
	alice := makeKeyPair(t)

	// The all-zero point is low order; X25519 must refuse it.
	var degenerate domain.X25519Public
	if _, err := crypto.DeriveSharedSecret(alice.Private, degenerate); !errors.Is(err, domain.ErrKeyAgreement) {
		t.Fatalf("got %v, want ErrKeyAgreement", err)
	}
}

func TestBoxRoundTrip(t *testing.T) {
	alice := makeKeyPair(t)
	bob := makeKeyPair(t)

	var nonce domain.Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	message := []byte(`{"public_key":"Addr1","session":"Sess1"}`)

	// Bob seals for Alice; Alice opens with Bob's public key.
	ciphertext := crypto.SealBox(message, nonce, alice.Public, bob.Private)
	opened, err := crypto.OpenBox(ciphertext, nonce, bob.Public, alice.Private)
	if err != nil {
		t.Fatalf("OpenBox: %v", err)
	}
	if !bytes.Equal(opened, message) {
		t.Fatalf("got %q, want %q", opened, message)
	}

	// A third party's key must not open it.
	eve := makeKeyPair(t)
	if _, err := crypto.OpenBox(ciphertext, nonce, bob.Public, eve.Private); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("wrong key: got %v, want ErrAuthentication", err)
	}
}

func TestSecretboxRoundTrip(t *testing.T) {
	var key domain.SharedKey
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	message := []byte("hello wallet")

	env, err := crypto.SealSecretbox(message, key)
	if err != nil {
		t.Fatalf("SealSecretbox: %v", err)
	}
	opened, err := crypto.OpenSecretbox(env, key)
	if err != nil {
		t.Fatalf("OpenSecretbox: %v", err)
	}
	if !bytes.Equal(opened, message) {
		t.Fatalf("got %q, want %q", opened, message)
	}
}

func TestSecretboxFreshNoncePerSeal(t *testing.T) {
	var key domain.SharedKey
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	first, err := crypto.SealSecretbox([]byte("same message"), key)
	if err != nil {
		t.Fatalf("SealSecretbox: %v", err)
	}
	second, err := crypto.SealSecretbox([]byte("same message"), key)
	if err != nil {
		t.Fatalf("SealSecretbox: %v", err)
	}
	if first.Nonce == second.Nonce {
		t.Fatal("nonce reused across seals")
	}
	if bytes.Equal(first.Ciphertext, second.Ciphertext) {
		t.Fatal("identical ciphertexts for distinct nonces")
	}
}

func TestSecretboxFailsClosed(t *testing.T) {
	var key, wrongKey domain.SharedKey
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	if _, err := rand.Read(wrongKey[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	env, err := crypto.SealSecretbox([]byte("payload"), key)
	if err != nil {
		t.Fatalf("SealSecretbox: %v", err)
	}

	if _, err := crypto.OpenSecretbox(env, wrongKey); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("wrong key: got %v, want ErrAuthentication", err)
	}

	flipped := env
	flipped.Ciphertext = append([]byte(nil), env.Ciphertext...)
	flipped.Ciphertext[0] ^= 0x01
	if _, err := crypto.OpenSecretbox(flipped, key); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("flipped bit: got %v, want ErrAuthentication", err)
	}

	wrongNonce := env
	wrongNonce.Nonce[0] ^= 0x01
	if _, err := crypto.OpenSecretbox(wrongNonce, key); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("wrong nonce: got %v, want ErrAuthentication", err)
	}

	truncated := env
	truncated.Ciphertext = env.Ciphertext[:4]
	if _, err := crypto.OpenSecretbox(truncated, key); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("truncated: got %v, want ErrAuthentication", err)
	}
}
