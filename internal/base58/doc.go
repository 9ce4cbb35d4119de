// Package base58 implements the Bitcoin-style base58 codec used for every
// binary field on the deeplink wire: keys, nonces and ciphertexts all travel
// as base58 query parameters.
//
// The alphabet omits 0, O, I and l. Leading zero bytes are preserved as
// leading '1' characters, so Decode(Encode(b)) == b for every byte string,
// including empty and all-zero inputs.
package base58
