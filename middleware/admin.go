package middleware

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretHeader carries the operator secret; the adminPass body field is a
// fallback for clients that cannot set headers. Header wins when both are
// present.
const SecretHeader = "x-admin-pass"

// AdminAuth gates every authoring route behind the shared operator secret.
// An empty configured secret is an operational error, answered 500 so it is
// never mistaken for a wrong guess.
func AdminAuth(adminPass string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminPass == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "ADMIN_PASS env not set"})
			return
		}

		supplied := c.GetHeader(SecretHeader)
		if supplied == "" && c.Request.Method != http.MethodGet {
			supplied = secretFromBody(c)
		}

		if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(adminPass)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}

// secretFromBody peeks at the JSON body for the adminPass field and restores
// the body so handlers can still bind the payload.
func secretFromBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	data, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	var body struct {
		AdminPass string `json:"adminPass"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.AdminPass
}
