package domain

// State is the session lifecycle position.
type State int

const (
	// Disconnected means no key material is held.
	Disconnected State = iota
	// Connecting means a handshake request is in flight.
	Connecting
	// Connected means the shared key and session token are established.
	Connected
	// Signing means a sign request is in flight over an established session.
	Signing
)

// String implements fmt.Stringer for logging.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Signing:
		return "signing"
	default:
		return "unknown"
	}
}

// ConnectResult is returned by a successful handshake.
type ConnectResult struct {
	// WalletAddress is the address the wallet reports for the connected
	// account, opaque to this library.
	WalletAddress string
	// SessionToken is echoed back on every subsequent request.
	SessionToken string
}

// SignResult is returned by a successful sign exchange.
type SignResult struct {
	// Signature is the wallet's signature over the submitted message,
	// base58-encoded as received.
	Signature string
}
