// Package walletsim is an in-process wallet peer for tests and the demo
// CLI. It answers connect and signMessage request URLs exactly the way the
// real wallet does: box-sealed handshake response, secretbox-sealed sign
// response, rejection URLs with errorCode/errorMessage.
//
// It deliberately encodes with github.com/mr-tron/base58 instead of the
// library's own codec, so the two implementations check each other across
// the wire.
package walletsim
