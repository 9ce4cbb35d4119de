package walletsim

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/mr-tron/base58"

	"phantomlink/internal/crypto"
	"phantomlink/internal/domain"
)

// Wallet is a simulated wallet holding one signing identity and one
// encryption keypair. It keeps a single session, like the protocol it
// mimics.
type Wallet struct {
	encKeys  domain.KeyPair
	signPub  ed25519.PublicKey
	signPriv ed25519.PrivateKey

	shared domain.SharedKey
	token  string
}

// New returns a wallet with fresh signing and encryption keys.
func New() (*Wallet, error) {
	encKeys, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	signPub, signPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Wallet{encKeys: encKeys, signPub: signPub, signPriv: signPriv}, nil
}

// Address is the wallet's account address: its base58 signing public key.
func (w *Wallet) Address() string { return base58.Encode(w.signPub) }

// SigningPublicKey exposes the ed25519 key so tests can verify signatures.
func (w *Wallet) SigningPublicKey() ed25519.PublicKey { return w.signPub }

// SharedKey exposes the wallet's side of the derived session key so tests
// can open what the dapp sealed.
func (w *Wallet) SharedKey() domain.SharedKey { return w.shared }

// HandleConnect approves a connect request URL and returns the callback URL
// the OS would deliver to the dapp.
func (w *Wallet) HandleConnect(requestURL string) (string, error) {
	q, redirect, err := parseRequest(requestURL)
	if err != nil {
		return "", err
	}
	dappPub, err := decodeKey(q.Get("dapp_encryption_public_key"))
	if err != nil {
		return "", fmt.Errorf("dapp_encryption_public_key: %w", err)
	}
	if q.Get("app_url") == "" || q.Get("cluster") == "" {
		return "", errors.New("connect request missing app_url or cluster")
	}

	w.shared, err = crypto.DeriveSharedSecret(w.encKeys.Private, dappPub)
	if err != nil {
		return "", err
	}

	tok := make([]byte, 16)
	if _, err := rand.Read(tok); err != nil {
		return "", err
	}
	w.token = base58.Encode(tok)

	body, err := json.Marshal(map[string]string{
		"public_key": w.Address(),
		"session":    w.token,
	})
	if err != nil {
		return "", err
	}

	var nonce domain.Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	sealed := crypto.SealBox(body, nonce, dappPub, w.encKeys.Private)

	return callbackURL(redirect, url.Values{
		"phantom_encryption_public_key": {base58.Encode(w.encKeys.Public.Slice())},
		"nonce":                         {base58.Encode(nonce.Slice())},
		"data":                          {base58.Encode(sealed)},
	})
}

// HandleSign approves a signMessage request URL: it opens the sealed
// payload, checks the session token, signs the message and returns the
// callback URL carrying the sealed signature.
func (w *Wallet) HandleSign(requestURL string) (string, error) {
	q, redirect, err := parseRequest(requestURL)
	if err != nil {
		return "", err
	}
	nonceBytes, err := base58.Decode(q.Get("nonce"))
	if err != nil || len(nonceBytes) != len(domain.Nonce{}) {
		return "", errors.New("sign request has a bad nonce")
	}
	payload, err := base58.Decode(q.Get("payload"))
	if err != nil {
		return "", fmt.Errorf("sign request payload: %w", err)
	}

	var nonce domain.Nonce
	copy(nonce[:], nonceBytes)
	plaintext, err := crypto.OpenSecretbox(domain.SealedEnvelope{Ciphertext: payload, Nonce: nonce}, w.shared)
	if err != nil {
		return "", err
	}

	var req struct {
		Message string `json:"message"`
		Session string `json:"session"`
		Display string `json:"display"`
	}
	if err := json.Unmarshal(plaintext, &req); err != nil {
		return "", err
	}
	if req.Session != w.token {
		return "", errors.New("sign request carries an unknown session token")
	}
	message, err := base58.Decode(req.Message)
	if err != nil {
		return "", fmt.Errorf("sign request message: %w", err)
	}

	sig := ed25519.Sign(w.signPriv, message)
	body, err := json.Marshal(map[string]string{"signature": base58.Encode(sig)})
	if err != nil {
		return "", err
	}

	env, err := crypto.SealSecretbox(body, w.shared)
	if err != nil {
		return "", err
	}
	return callbackURL(redirect, url.Values{
		"nonce": {base58.Encode(env.Nonce.Slice())},
		"data":  {base58.Encode(env.Ciphertext)},
	})
}

// Reject answers any request URL with the wallet's rejection callback.
func (w *Wallet) Reject(requestURL, code, message string) (string, error) {
	_, redirect, err := parseRequest(requestURL)
	if err != nil {
		return "", err
	}
	return callbackURL(redirect, url.Values{
		"errorCode":    {code},
		"errorMessage": {message},
	})
}

func parseRequest(requestURL string) (url.Values, string, error) {
	u, err := url.Parse(requestURL)
	if err != nil {
		return nil, "", fmt.Errorf("parsing request url: %w", err)
	}
	q := u.Query()
	redirect := q.Get("redirect_link")
	if redirect == "" {
		return nil, "", errors.New("request missing redirect_link")
	}
	return q, redirect, nil
}

func callbackURL(redirect string, params url.Values) (string, error) {
	u, err := url.Parse(redirect)
	if err != nil {
		return "", fmt.Errorf("parsing redirect_link: %w", err)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func decodeKey(s string) (domain.X25519Public, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return domain.X25519Public{}, err
	}
	if len(b) != len(domain.X25519Public{}) {
		return domain.X25519Public{}, fmt.Errorf("key is %d bytes, want %d", len(b), len(domain.X25519Public{}))
	}
	var pub domain.X25519Public
	copy(pub[:], b)
	return pub, nil
}
