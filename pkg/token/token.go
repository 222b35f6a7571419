package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMalformed = errors.New("token: malformed")
	ErrSignature = errors.New("token: signature mismatch")
	ErrExpired   = errors.New("token: expired")
)

// Payload is the signed content of a one-shot notice.
type Payload struct {
	Kind     string `json:"k"`
	Message  string `json:"m"`
	IssuedAt int64  `json:"t"`
}

// Signer produces and verifies HMAC-SHA256 signed tokens of the form
// base64url(payload).base64url(signature).
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner uses secret as the key, or a fresh random 32 byte key when secret is empty.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("token: generate key: %w", err)
		}
	}
	return &Signer{key: key, ttl: ttl, now: time.Now}, nil
}

// Sign serialises p, stamping IssuedAt when unset.
func (s *Signer) Sign(p Payload) (string, error) {
	if p.IssuedAt == 0 {
		p.IssuedAt = s.now().Unix()
	}
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("token: encode payload: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(body)
	return encoded + "." + base64.RawURLEncoding.EncodeToString(s.mac([]byte(encoded))), nil
}

// Verify checks the signature and age of a token and returns its payload.
func (s *Signer) Verify(tok string) (Payload, error) {
	encoded, sig, ok := strings.Cut(tok, ".")
	if !ok || encoded == "" || sig == "" {
		return Payload{}, ErrMalformed
	}
	actual, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return Payload{}, ErrMalformed
	}
	if !hmac.Equal(s.mac([]byte(encoded)), actual) {
		return Payload{}, ErrSignature
	}

	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, ErrMalformed
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Payload{}, ErrMalformed
	}
	if s.ttl > 0 && s.now().Sub(time.Unix(p.IssuedAt, 0)) > s.ttl {
		return Payload{}, ErrExpired
	}
	return p, nil
}

func (s *Signer) mac(data []byte) []byte {
	m := hmac.New(sha256.New, s.key)
	m.Write(data)
	return m.Sum(nil)
}
