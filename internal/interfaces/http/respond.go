package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// redirectWithWarning replica el flujo flash+redirect del panel: aviso visible
// en query string y 302 al índice de admin (nunca una página de error).
func redirectWithWarning(c *fiber.Ctx, warning string) error {
	return c.Redirect("/admin?warning="+url.QueryEscape(warning), fiber.StatusFound)
}
