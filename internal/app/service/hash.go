package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// HashVersion names the signature hash composition stored with every signed term.
// sig-v2 is sha256 over token, signer login, signing time and resolved address.
const HashVersion = "sig-v2"

const signedAtLayout = "2006-01-02T15:04:05.000000Z07:00"

// SignatureHash is tamper evidence over the recorded tuple, not a credential.
func SignatureHash(token, login string, signedAt time.Time, address string) string {
	payload := strings.Join([]string{
		token,
		login,
		signedAt.UTC().Format(signedAtLayout),
		address,
	}, "_")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
