package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets HSTS, nosniff, frame and referrer headers.
// HSTS is only sent in production, where TLS terminates in front of the API.
func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	cfg := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         !production,
		BadHostHandler: func(c *gin.Context) {
			c.AbortWithStatus(400)
		},
	}
	if production {
		cfg.STSSeconds = 63072000
		cfg.STSIncludeSubdomains = true
	}
	return secure.New(cfg)
}

// SwaggerHeadersMiddleware relaxes the policy for the swagger UI, which
// loads its own scripts and styles.
func SwaggerHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		c.Next()
	}
}
