package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requests without a usable Authorization header never reach the handler.
// Token verification itself runs against Firebase and is not covered here.
func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(nil)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwdw=="},
		{"bearer without token", "Bearer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			handlerCalled := false
			next := func(c echo.Context) error {
				handlerCalled = true
				return nil
			}

			err := m.Authenticate(next)(c)
			require.Error(t, err)

			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
			assert.False(t, handlerCalled)
		})
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	m := NewAuthMiddleware(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	err := m.OptionalAuth(func(c echo.Context) error {
		assert.Nil(t, c.Get("uid"))
		return nil
	})(c)
	require.NoError(t, err)
}
