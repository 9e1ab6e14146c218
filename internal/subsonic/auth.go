// ABOUTME: Per-request authentication parameters for the Subsonic REST API.
// ABOUTME: Token mode salts and hashes the password; password mode sends it directly.

package subsonic

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"net/url"

	"github.com/2389/sonic-gateway/internal/config"
)

// saltLength is the number of characters in a generated auth salt.
const saltLength = 6

const saltAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// AuthParams builds the authentication query parameters for one request.
// Token mode generates a fresh salt every call, so credentials are never
// reused across requests.
func AuthParams(cfg *config.SubsonicConfig) url.Values {
	params := url.Values{}
	params.Set("u", cfg.Username)

	if cfg.TokenAuth() {
		salt := newSalt()
		params.Set("t", saltedToken(cfg.Password, salt))
		params.Set("s", salt)
	} else {
		params.Set("p", cfg.Password)
	}

	params.Set("v", cfg.APIVersion)
	params.Set("c", cfg.ClientID)
	return params
}

// saltedToken computes the Subsonic auth token: hex(md5(password + salt)).
func saltedToken(password, salt string) string {
	sum := md5.Sum([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func newSalt() string {
	b := make([]byte, saltLength)
	for i := range b {
		b[i] = saltAlphabet[rand.Intn(len(saltAlphabet))]
	}
	return string(b)
}
