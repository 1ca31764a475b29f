package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestHMACVerifier(t *testing.T) {
	v := NewHMACVerifier("secret")
	body := []byte(`{"productHandle":"h"}`)

	assert.True(t, v.Verify(body, sign("secret", string(body))))
	assert.True(t, v.Verify(body, "  "+sign("secret", string(body))+"\n"), "header whitespace is tolerated")

	assert.False(t, v.Verify(body, sign("other-secret", string(body))))
	assert.False(t, v.Verify(body, "not-a-signature"))
	assert.False(t, v.Verify(body, ""))
	assert.False(t, v.Verify([]byte("tampered"), sign("secret", string(body))))
}

func TestHMACVerifierEmptySecretRejects(t *testing.T) {
	v := NewHMACVerifier("")
	assert.False(t, v.Verify([]byte("x"), sign("", "x")))
}

func TestPassthroughVerifier(t *testing.T) {
	v := PassthroughVerifier{}
	assert.True(t, v.Verify(nil, ""))
	assert.True(t, v.Verify([]byte("anything"), "garbage"))
}

func TestSelectVerifier(t *testing.T) {
	assert.IsType(t, PassthroughVerifier{}, SelectVerifier(""))
	assert.IsType(t, PassthroughVerifier{}, SelectVerifier("   "))
	assert.IsType(t, HMACVerifier{}, SelectVerifier("secret"))
}

func TestVerifySignatureRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(VerifySignature(NewHMACVerifier("secret"), zap.NewNop()))

	var seenBody string
	router.POST("/x", func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		seenBody = string(b)
		c.Status(http.StatusOK)
	})

	body := `{"hello":"world"}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set(SignatureHeader, sign("secret", body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, seenBody)
}

func TestVerifySignatureRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(VerifySignature(NewHMACVerifier("secret"), zap.NewNop()))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{}`))
	req.Header.Set(SignatureHeader, "bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid_signature"}`, w.Body.String())
}
