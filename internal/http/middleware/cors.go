package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"recordsapi/internal/config"
)

// CORS allows browser access from the configured origins ("*" for any).
func CORS(cfg config.CORSConfig) fiber.Handler {
	origins := strings.Join(cfg.AllowedOrigins, ",")
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + RequestIDHeader,
		ExposeHeaders: RequestIDHeader,
	})
}
