package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"phantomlink/internal/base58"
	"phantomlink/internal/crypto"
	"phantomlink/internal/domain"
	"phantomlink/internal/util/memzero"
)

// Config holds the fixed identifiers a session puts on every outgoing URL.
type Config struct {
	// WalletBaseURL is the wallet's universal-link prefix,
	// e.g. https://phantom.app/ul/v1.
	WalletBaseURL string
	// AppURL identifies this dapp to the wallet (shown on its approval
	// screen).
	AppURL string
	// RedirectScheme is the custom URL scheme the OS routes back to this
	// app; response URLs arrive as <scheme>://connected or <scheme>://signed.
	RedirectScheme string
	// Cluster names the network, e.g. mainnet-beta or devnet.
	Cluster string
	// Logger receives state transitions and failure causes. Key material
	// and plaintexts are never logged. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

const (
	defaultWalletBaseURL = "https://phantom.app/ul/v1"
	defaultCluster       = "mainnet-beta"
)

// connectPayload is the decrypted body of a connect response.
type connectPayload struct {
	PublicKey string `json:"public_key"`
	Session   string `json:"session"`
}

// signRequestPayload is the plaintext of an outgoing sign request.
type signRequestPayload struct {
	Message string `json:"message"`
	Session string `json:"session"`
	Display string `json:"display"`
}

// signResponsePayload is the decrypted body of a sign response.
type signResponsePayload struct {
	Signature string `json:"signature"`
}

// Session is the protocol state machine. One session talks to one wallet;
// construct it explicitly and share nothing.
type Session struct {
	mu  sync.Mutex
	cfg Config
	log zerolog.Logger

	state      domain.State
	keys       domain.KeyPair
	shared     domain.SharedKey
	token      string
	walletAddr string
}

// New returns a disconnected session. Zero-value config fields fall back to
// the wallet's public defaults.
func New(cfg Config) *Session {
	if cfg.WalletBaseURL == "" {
		cfg.WalletBaseURL = defaultWalletBaseURL
	}
	if cfg.Cluster == "" {
		cfg.Cluster = defaultCluster
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Session{cfg: cfg, log: log, state: domain.Disconnected}
}

// State reports the current lifecycle position.
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token reports the session token, empty unless connected.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// WalletAddress reports the address the wallet returned on connect.
func (s *Session) WalletAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.walletAddr
}

// PublicKey returns the dapp's current ephemeral public key, base58-encoded,
// or empty when disconnected.
func (s *Session) PublicKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.Disconnected {
		return ""
	}
	return base58.Encode(s.keys.Public.Slice())
}

// Connect discards any prior session state, generates a fresh ephemeral
// keypair and returns the connect URL for the OS to open. The session is
// left in the connecting state until the response arrives or Disconnect is
// called.
func (s *Session) Connect() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		return "", err
	}
	s.keys = keys

	u, err := buildRequestURL(s.cfg.WalletBaseURL, "connect", map[string]string{
		"app_url":                    s.cfg.AppURL,
		"dapp_encryption_public_key": base58.Encode(s.keys.Public.Slice()),
		"redirect_link":              redirectLink(s.cfg.RedirectScheme, "connected"),
		"cluster":                    s.cfg.Cluster,
	})
	if err != nil {
		s.reset()
		return "", err
	}

	s.state = domain.Connecting
	s.log.Debug().Str("state", s.state.String()).Msg("connect request built")
	return u, nil
}

// HandleConnectResponse consumes the wallet's connect callback URL. On
// success the session holds the derived session key and token and is
// connected; on any failure all key material is wiped and the session is
// disconnected.
func (s *Session) HandleConnectResponse(rawURL string) (domain.ConnectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.Connecting {
		return domain.ConnectResult{}, fmt.Errorf("%w: no handshake in flight", domain.ErrNotConnected)
	}

	fail := func(err error) (domain.ConnectResult, error) {
		s.reset()
		s.log.Warn().Err(err).Msg("handshake failed")
		return domain.ConnectResult{}, err
	}

	params, err := parseResponseURL(rawURL)
	if err != nil {
		return fail(err)
	}
	if rej := peerRejection(params); rej != nil {
		return fail(rej)
	}

	peerPub, err := requireKeyParam(params, "phantom_encryption_public_key")
	if err != nil {
		return fail(err)
	}
	nonce, err := requireNonceParam(params, "nonce")
	if err != nil {
		return fail(err)
	}
	data, err := requireDataParam(params, "data")
	if err != nil {
		return fail(err)
	}

	shared, err := crypto.DeriveSharedSecret(s.keys.Private, peerPub)
	if err != nil {
		return fail(err)
	}
	plaintext, err := crypto.OpenBox(data, nonce, peerPub, s.keys.Private)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrHandshakeFailed, err))
	}

	var payload connectPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
	}
	if payload.PublicKey == "" || payload.Session == "" {
		return fail(fmt.Errorf("%w: missing public_key or session", domain.ErrMalformedPayload))
	}

	s.shared = shared
	s.token = payload.Session
	s.walletAddr = payload.PublicKey
	s.state = domain.Connected
	s.log.Info().Str("state", s.state.String()).Msg("session established")

	return domain.ConnectResult{
		WalletAddress: payload.PublicKey,
		SessionToken:  payload.Session,
	}, nil
}

// SignMessage seals message under the session key and returns the
// signMessage URL for the OS to open. Requires a connected session.
func (s *Session) SignMessage(message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.Connected {
		return "", fmt.Errorf("%w: cannot sign in state %s", domain.ErrNotConnected, s.state)
	}

	plaintext, err := json.Marshal(signRequestPayload{
		Message: base58.Encode([]byte(message)),
		Session: s.token,
		Display: "utf8",
	})
	if err != nil {
		return "", fmt.Errorf("encoding sign payload: %w", err)
	}

	env, err := crypto.SealSecretbox(plaintext, s.shared)
	if err != nil {
		return "", err
	}

	u, err := buildRequestURL(s.cfg.WalletBaseURL, "signMessage", map[string]string{
		"dapp_encryption_public_key": base58.Encode(s.keys.Public.Slice()),
		"nonce":                      base58.Encode(env.Nonce.Slice()),
		"redirect_link":              redirectLink(s.cfg.RedirectScheme, "signed"),
		"payload":                    base58.Encode(env.Ciphertext),
	})
	if err != nil {
		return "", err
	}

	s.state = domain.Signing
	s.log.Debug().Str("state", s.state.String()).Msg("sign request built")
	return u, nil
}

// HandleSignResponse consumes the wallet's sign callback URL and returns the
// signature. A peer rejection keeps the session connected; any other failure
// wipes it, since a callback that cannot be authenticated means the key
// material can no longer be trusted.
func (s *Session) HandleSignResponse(rawURL string) (domain.SignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.Signing {
		return domain.SignResult{}, fmt.Errorf("%w: no sign request in flight", domain.ErrNotConnected)
	}

	fail := func(err error) (domain.SignResult, error) {
		s.reset()
		s.log.Warn().Err(err).Msg("sign exchange failed")
		return domain.SignResult{}, err
	}

	params, err := parseResponseURL(rawURL)
	if err != nil {
		return fail(err)
	}
	if rej := peerRejection(params); rej != nil {
		// The wallet declined; the session itself is still good.
		s.state = domain.Connected
		s.log.Info().Str("code", rej.Code).Msg("sign request rejected by wallet")
		return domain.SignResult{}, rej
	}

	nonce, err := requireNonceParam(params, "nonce")
	if err != nil {
		return fail(err)
	}
	data, err := requireDataParam(params, "data")
	if err != nil {
		return fail(err)
	}

	plaintext, err := crypto.OpenSecretbox(domain.SealedEnvelope{Ciphertext: data, Nonce: nonce}, s.shared)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrDecryptionFailed, err))
	}

	var payload signResponsePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
	}
	if payload.Signature == "" {
		return fail(fmt.Errorf("%w: missing signature", domain.ErrMalformedPayload))
	}

	s.state = domain.Connected
	s.log.Debug().Str("state", s.state.String()).Msg("signature received")
	return domain.SignResult{Signature: payload.Signature}, nil
}

// Disconnect wipes all key material and returns the session to the
// disconnected state. Safe to call in any state, any number of times; it is
// also the cancellation path for a handshake or sign that never received a
// response.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.log.Debug().Str("state", s.state.String()).Msg("disconnected")
}

// reset erases key material and drops to disconnected. Callers hold s.mu.
func (s *Session) reset() {
	memzero.Zero(s.keys.Private[:])
	memzero.Zero(s.keys.Public[:])
	memzero.Zero(s.shared[:])
	s.keys = domain.KeyPair{}
	s.shared = domain.SharedKey{}
	s.token = ""
	s.walletAddr = ""
	s.state = domain.Disconnected
}
