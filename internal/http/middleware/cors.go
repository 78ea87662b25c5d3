package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORS allows the storefront origins. An empty list falls back to local development origins
// plus the public base URL.
func CORS(allowed []string, publicBaseURL string) gin.HandlerFunc {
	origins := map[string]bool{}
	if len(allowed) == 0 {
		allowed = append(append([]string{}, defaultOrigins...), publicBaseURL)
	}
	for _, o := range allowed {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins[o] = true
		}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOriginFunc = func(origin string) bool { return origins[origin] }
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AddAllowHeaders("Authorization", "Accept", "X-Request-ID")
	cfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 24 * time.Hour
	return cors.New(cfg)
}
