package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

// PrincipalKey is the echo.Context key holding the verified domain.Principal.
const PrincipalKey = "principal"

// identityClaims is the JWT payload issued by the identity provider.
type identityClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Auth validates the bearer JWT, checks that the subject and email claims
// are present, and injects the resulting principal into the context.
func Auth(jwtSecret string, v echo.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims identityClaims
			tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			p := domain.Principal{
				Subject: claims.Subject,
				Email:   claims.Email,
				Name:    claims.UserMetadata.FullName,
				Token:   parts[1],
			}
			if err := v.Validate(&p); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing identity claims: "+err.Error())
			}

			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}
