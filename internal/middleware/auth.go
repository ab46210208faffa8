package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"foodmate-server/internal/config"
	"foodmate-server/internal/domain"
	"foodmate-server/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const sessionKey = "session"

// IssueToken signs a short-lived bearer token for an email the identity
// provider already verified. The server never sees credentials.
func IssueToken(jwtCfg *config.JWT, email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(jwtCfg.TTLHours) * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtCfg.Secret))
}

// AuthMiddleware verifies the bearer token and attaches a Session to the
// request. The role comes from one user lookup; unknown emails still get a
// session with the default role so freshly registered users can order.
func AuthMiddleware(jwtCfg *config.JWT, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, "Bearer "),
				&jwt.RegisteredClaims{},
				func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, errors.New("unexpected signing method")
					}
					return []byte(jwtCfg.Secret), nil
				},
			)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			email, err := token.Claims.GetSubject()
			if err != nil || email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			session := &domain.Session{Email: email, Role: domain.RoleUser}
			user, err := userRepo.FindByEmail(c.Request().Context(), email)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if user != nil {
				session.Role = user.Role
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

func SessionFromContext(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionKey).(*domain.Session)
	return session
}
