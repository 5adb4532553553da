// middleware/local_identity.go
package middleware

import "github.com/gin-gonic/gin"

// LocalIdentity stamps every request with a fixed actor. It stands in for
// GroupAuthMiddleware when group auth is disabled, so audit attribution and
// the handlers' actor guards keep working on local deployments.
func LocalIdentity(actor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", actor)
		c.Set("requestingUser", actor)
		c.Next()
	}
}
