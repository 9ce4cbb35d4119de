package base58

import (
	"fmt"
	"math/big"

	"phantomlink/internal/domain"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var decodeMap = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = int8(i)
	}
	return m
}()

var base = big.NewInt(58)

// Encode maps b to its base58 string. Each leading zero byte becomes a
// leading '1'; the remainder is treated as a big-endian integer.
func Encode(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(b[zeros:])
	mod := new(big.Int)

	// Digits come out least-significant first; size the buffer for the
	// worst case (log58(256) ≈ 1.37 chars per byte).
	out := make([]byte, 0, zeros+(len(b)-zeros)*137/100+1)
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		out = append(out, alphabet[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		out = append(out, alphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// Decode is the inverse of Encode. It fails with domain.ErrInvalidCharacter
// if s contains any character outside the alphabet.
func Decode(s string) ([]byte, error) {
	zeros := 0
	for zeros < len(s) && s[zeros] == alphabet[0] {
		zeros++
	}

	n := new(big.Int)
	for i := zeros; i < len(s); i++ {
		c := s[i]
		d := decodeMap[c]
		if d < 0 {
			return nil, fmt.Errorf("%w: %q at offset %d", domain.ErrInvalidCharacter, rune(c), i)
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(d)))
	}

	num := n.Bytes() // big-endian, no leading zeros
	out := make([]byte, zeros+len(num))
	copy(out[zeros:], num)
	return out, nil
}
