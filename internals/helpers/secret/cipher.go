// Package secret menyimpan kredensial pihak ketiga (API key LLM) dalam bentuk terenkripsi.
//
// Format ciphertext: "v1:" + base64(nonce || sealed). Kunci 32 byte diberikan lewat
// AI_ENCRYPTION_KEY sebagai hex (64 karakter) atau base64. Tanpa kunci yang valid,
// semua operasi menolak; tidak ada fallback ke plaintext maupun base64 polos.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const versionPrefix = "v1:"

var (
	ErrMissingKey    = errors.New("secret: encryption key belum dikonfigurasi")
	ErrInvalidKey    = errors.New("secret: encryption key harus 32 byte (hex 64 karakter atau base64)")
	ErrMalformed     = errors.New("secret: ciphertext tidak dikenali")
	ErrDecryptFailed = errors.New("secret: gagal dekripsi")
)

type Cipher struct {
	key []byte
}

// NewCipher mem-parse kunci mentah dari env. Kunci kosong → ErrMissingKey.
func NewCipher(raw string) (*Cipher, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingKey
	}
	key, err := parseKey(raw)
	if err != nil {
		return nil, err
	}
	return &Cipher{key: key}, nil
}

func parseKey(raw string) ([]byte, error) {
	if len(raw) == 2*chacha20poly1305.KeySize {
		if b, err := hex.DecodeString(raw); err == nil {
			return b, nil
		}
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(raw); err == nil && len(b) == chacha20poly1305.KeySize {
			return b, nil
		}
	}
	return nil, ErrInvalidKey
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if c == nil || len(c.key) == 0 {
		return "", ErrMissingKey
	}
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("secret: init aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secret: nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return versionPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if c == nil || len(c.key) == 0 {
		return "", ErrMissingKey
	}
	if !strings.HasPrefix(ciphertext, versionPrefix) {
		return "", ErrMalformed
	}
	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ciphertext, versionPrefix))
	if err != nil {
		return "", ErrMalformed
	}
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("secret: init aead: %w", err)
	}
	if len(blob) < aead.NonceSize()+aead.Overhead() {
		return "", ErrMalformed
	}
	nonce, sealed := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plain), nil
}

// KeyHint = 4 karakter terakhir, untuk ditampilkan di daftar API key.
func KeyHint(plaintext string) string {
	s := strings.TrimSpace(plaintext)
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return "…" + string(r[len(r)-4:])
}
