// Package provision implements the signed handshake with the remote domain
// provisioning service: the outbound setup client and the HMAC signature
// scheme shared with the webhook receiver.
package provision

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body in
// both directions of the provisioning handshake.
const SignatureHeader = "X-Signature"

// Sign computes the hex HMAC-SHA256 of body under the shared secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a claimed signature against the raw body using a
// constant-time comparison. This is the trust boundary protecting tenant
// domain state from forged callbacks.
func Verify(secret string, body []byte, signature string) bool {
	expected := Sign(secret, body)
	return hmac.Equal([]byte(signature), []byte(expected))
}
