package api

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wangtaito/workout-project/internal/models"
)

type authClaims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// RoleRequired admits only users holding one of roles. It must run after
// AuthRequired.
func (handler *Handler) RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := currentUser(c)
		if !ok {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		if !slices.Contains(roles, user.Role) {
			return apiError(c, fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	if handler.deps.I18n == nil {
		return c.Next()
	}
	language := handler.deps.I18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.deps.I18n.NormalizeLanguage(requested)
	}
	c.Locals(contextLanguageKey, language)
	return c.Next()
}

// requestToken reads the session token from the auth cookie or, for API
// clients, from an Authorization bearer header.
func requestToken(c *fiber.Ctx) string {
	if header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Cookies(authCookieName))
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (models.User, error) {
	tokenValue := requestToken(c)
	if tokenValue == "" {
		return models.User{}, errors.New("missing auth token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return models.User{}, errors.New("token expired")
	}
	if claims.UserID == "" || !models.IsKnownRole(claims.Role) {
		return models.User{}, errors.New("invalid token claims")
	}

	return models.User{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

func (handler *Handler) buildToken(user models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := handler.now()

	claims := authClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(defaultAuthTokenTTL),
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(-1 * time.Hour),
	})
}

// RequestUsesCookieSession reports whether the browser session cookie is the
// only credential on the request. Bearer-token clients are not exposed to
// cross-site request forgery.
func RequestUsesCookieSession(c *fiber.Ctx) bool {
	if strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) != "" {
		return false
	}
	return strings.TrimSpace(c.Cookies(authCookieName)) != ""
}
