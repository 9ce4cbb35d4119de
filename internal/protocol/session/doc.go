// Package session drives the encrypted deeplink exchange with the wallet.
//
// A Session owns one ephemeral keypair and, once connected, one derived
// session key and session token. It builds the outgoing connect/signMessage
// URLs, parses the response URLs the OS hands back, and walks the
// disconnected → connecting → connected → signing lifecycle. All entry
// points are synchronous and serialized; the wait for the wallet's response
// belongs to the surrounding application, which delivers it later as an
// independent call.
package session
