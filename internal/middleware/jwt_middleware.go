package middleware

import (
	"net/url"
	"strings"

	"litlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie the session token travels in.
const SessionCookie = "session"

// LoginRequired guards a route: the request must carry a valid session token,
// either in the session cookie or as a bearer header. Unauthenticated
// requests are redirected to the login page with the original URL preserved
// in ?next=, matching the site's navigation flow.
func LoginRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return redirectToLogin(c)
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			return redirectToLogin(c)
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			return redirectToLogin(c)
		}
		username, _ := claims["username"].(string)

		c.Locals("user_id", uint(userID))
		c.Locals("username", username)
		return c.Next()
	}
}

// TokenFromRequest extracts the session token from the cookie or the
// Authorization header. Returns "" when neither is present.
func TokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// CurrentUserID returns the authenticated user's id. Only valid behind
// LoginRequired.
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

func redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
}
