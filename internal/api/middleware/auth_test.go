package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

type structValidator struct{ v *validator.Validate }

func (s structValidator) Validate(i any) error { return s.v.Struct(i) }

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func annClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":           "u1",
		"email":         "a@x.com",
		"user_metadata": map[string]any{"full_name": "Ann"},
		"exp":           time.Now().Add(time.Hour).Unix(),
	}
}

// run executes the middleware and reports the response code and whether
// the next handler was reached.
func run(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", structValidator{v: validator.New()})
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := sign(t, "secret", annClaims())
	rec, called, c := run(t, "Bearer "+token)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok {
		t.Fatalf("principal not set")
	}
	if p.Subject != "u1" || p.Email != "a@x.com" || p.Name != "Ann" || p.Token != token {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	noEmail := annClaims()
	delete(noEmail, "email")
	noSub := annClaims()
	delete(noSub, "sub")
	expired := annClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	cases := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Token abc",
		"garbage token":    "Bearer not-a-token",
		"wrong secret":     "Bearer " + sign(t, "other", annClaims()),
		"missing email":    "Bearer " + sign(t, "secret", noEmail),
		"missing subject":  "Bearer " + sign(t, "secret", noSub),
		"expired":          "Bearer " + sign(t, "secret", expired),
		"lowercase bearer": "bearer ",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called, _ := run(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_EmailIsNotFormatChecked(t *testing.T) {
	claims := annClaims()
	claims["email"] = "ann@localhost"
	rec, called, c := run(t, "Bearer "+sign(t, "secret", claims))

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (called=%v)", rec.Code, called)
	}
	if p := c.Get(PrincipalKey).(domain.Principal); p.Email != "ann@localhost" {
		t.Fatalf("unexpected email %q", p.Email)
	}
}

func TestAuthMiddleware_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, annClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec, called, _ := run(t, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for alg=none, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_MessageNamesMissingClaim(t *testing.T) {
	noEmail := annClaims()
	delete(noEmail, "email")
	rec, _, _ := run(t, "Bearer "+sign(t, "secret", noEmail))
	if !strings.Contains(rec.Body.String(), "missing identity claims") || !strings.Contains(rec.Body.String(), "Email") {
		t.Fatalf("expected claim name in body, got %s", rec.Body.String())
	}
}
