// Package encoding serializes widget props into URL-safe tokens.
//
// Props are packed with msgpack and then either signed (HMAC-SHA256,
// readable but tamper-proof) or sealed (AES-256-GCM, opaque). The token is
// what travels in the "p" parameter of every widget request.
package encoding

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pthm/imagediff"
)

var (
	ErrInvalidFormat    = errors.New("encoding: invalid token format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// formatVersion prefixes every packed payload.
const formatVersion byte = 1

// sigLen is the truncated HMAC length in bytes.
const sigLen = 16

// Encoder turns props into tokens and back. It is safe for concurrent use.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256; longer keys are used as is for HMAC and truncated for AES.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, fmt.Errorf("encoding: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encoding: gcm: %w", err)
	}
	return &Encoder{key: key, gcm: gcm}, nil
}

// Encode packs props. With sensitive set the token is encrypted, otherwise
// it is signed.
func (e *Encoder) Encode(props imagediff.Props, sensitive bool) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte(formatVersion)
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(&props); err != nil {
		return "", fmt.Errorf("encoding: pack: %w", err)
	}

	if sensitive {
		return e.seal(buf.Bytes())
	}
	return e.sign(buf.Bytes()), nil
}

// Decode reverses Encode. The sensitive flag must match the one used to
// encode. Decoded props are not validated; see imagediff.Props.Validate.
func (e *Encoder) Decode(token string, sensitive bool) (imagediff.Props, error) {
	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.open(token)
	} else {
		packed, err = e.verify(token)
	}
	if err != nil {
		return imagediff.Props{}, err
	}

	if len(packed) == 0 || packed[0] != formatVersion {
		return imagediff.Props{}, ErrInvalidFormat
	}
	var props imagediff.Props
	if err := msgpack.Unmarshal(packed[1:], &props); err != nil {
		return imagediff.Props{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return props, nil
}

func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.key)
	m.Write(data)
	return m.Sum(nil)[:sigLen]
}

// sign returns "<payload>.<signature>", both base64url without padding.
func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(token string) ([]byte, error) {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if !hmac.Equal(sig, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

// seal returns base64url(nonce || ciphertext).
func (e *Encoder) seal(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encoding: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) open(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	n := e.gcm.NonceSize()
	if len(raw) < n {
		return nil, ErrInvalidFormat
	}
	data, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
