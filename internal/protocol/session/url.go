package session

import (
	"fmt"
	"net/url"

	"phantomlink/internal/base58"
	"phantomlink/internal/domain"
)

// buildRequestURL appends op to the wallet base URL and percent-encodes
// params into the query string.
func buildRequestURL(base, op string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: parsing base %q: %w", domain.ErrURLConstruction, base, err)
	}
	u = u.JoinPath(op)

	q := url.Values{}
	for k, v := range params {
		if v == "" {
			return "", fmt.Errorf("%w: empty required parameter %q", domain.ErrURLConstruction, k)
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redirectLink names the response destination the OS should route back to.
func redirectLink(scheme, kind string) string {
	return scheme + "://" + kind
}

// parseResponseURL extracts the query parameters from a callback URL.
func parseResponseURL(rawURL string) (url.Values, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return u.Query(), nil
}

// peerRejection returns the wallet's error, if the response carries one.
// An errorCode parameter wins over any other content in the URL.
func peerRejection(params url.Values) *domain.PeerRejectedError {
	if !params.Has("errorCode") && !params.Has("errorMessage") {
		return nil
	}
	return &domain.PeerRejectedError{
		Code:    params.Get("errorCode"),
		Message: params.Get("errorMessage"),
	}
}

func requireParam(params url.Values, name string) ([]byte, error) {
	v := params.Get(name)
	if v == "" {
		return nil, fmt.Errorf("%w: missing %q", domain.ErrMalformedResponse, name)
	}
	b, err := base58.Decode(v)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %w", domain.ErrMalformedResponse, name, err)
	}
	return b, nil
}

func requireKeyParam(params url.Values, name string) (domain.X25519Public, error) {
	b, err := requireParam(params, name)
	if err != nil {
		return domain.X25519Public{}, err
	}
	if len(b) != len(domain.X25519Public{}) {
		return domain.X25519Public{}, fmt.Errorf("%w: %q is %d bytes, want %d",
			domain.ErrMalformedResponse, name, len(b), len(domain.X25519Public{}))
	}
	var pub domain.X25519Public
	copy(pub[:], b)
	return pub, nil
}

func requireNonceParam(params url.Values, name string) (domain.Nonce, error) {
	b, err := requireParam(params, name)
	if err != nil {
		return domain.Nonce{}, err
	}
	if len(b) != len(domain.Nonce{}) {
		return domain.Nonce{}, fmt.Errorf("%w: %q is %d bytes, want %d",
			domain.ErrMalformedResponse, name, len(b), len(domain.Nonce{}))
	}
	var n domain.Nonce
	copy(n[:], b)
	return n, nil
}

func requireDataParam(params url.Values, name string) ([]byte, error) {
	return requireParam(params, name)
}
