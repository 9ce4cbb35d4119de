package domain

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// SharedKey is the symmetric key derived from an X25519 agreement, used for
// secretbox sealing during the session phase.
type SharedKey [32]byte

// Slice returns the key as a []byte.
func (k SharedKey) Slice() []byte { return k[:] }

// Nonce is a single-use value for one seal/open call. Never reused under the
// same key.
type Nonce [24]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// KeyPair is an ephemeral key-agreement pair, generated fresh for every
// connection attempt and wiped on disconnect.
type KeyPair struct {
	Public  X25519Public
	Private X25519Private
}

// SealedEnvelope is the output of one encryption call: ciphertext plus the
// nonce it was sealed under. The nonce is not secret and travels with the
// ciphertext.
type SealedEnvelope struct {
	Ciphertext []byte
	Nonce      Nonce
}
