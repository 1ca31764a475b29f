package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignatureHeader carries the storefront's request signature when
// verification is enabled.
const SignatureHeader = "X-Configurator-Signature"

// Verifier checks request authenticity over the raw body bytes.
type Verifier interface {
	Verify(body []byte, signature string) bool
}

// PassthroughVerifier accepts every request. Used when no signature
// secret is configured.
type PassthroughVerifier struct{}

func (PassthroughVerifier) Verify(body []byte, signature string) bool {
	return true
}

// HMACVerifier validates a base64 SHA-256 HMAC of the raw body against
// the shared secret.
type HMACVerifier struct {
	secret string
}

func NewHMACVerifier(secret string) HMACVerifier {
	return HMACVerifier{secret: secret}
}

func (v HMACVerifier) Verify(body []byte, signature string) bool {
	if v.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(v.secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// SelectVerifier picks the verifier for the configured signature secret:
// an empty secret disables verification.
func SelectVerifier(secret string) Verifier {
	if strings.TrimSpace(secret) == "" {
		return PassthroughVerifier{}
	}
	return NewHMACVerifier(secret)
}

// VerifySignature rejects requests whose signature the verifier does not
// accept. The body is restored for downstream JSON binding (the HMAC is
// computed over raw bytes).
func VerifySignature(verifier Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_payload"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		if !verifier.Verify(bodyBytes, c.GetHeader(SignatureHeader)) {
			logger.Warn("Rejected request with invalid signature", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
