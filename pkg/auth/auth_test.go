package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTServiceWithSecret("segredo", time.Hour)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := svc.GenerateToken(DefaultOperator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, DefaultOperator, claims.Operator)
		assert.Equal(t, issuer, claims.Issuer)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := NewJWTServiceWithSecret("outro", time.Hour).GenerateToken(DefaultOperator)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("ExpiredAndRefresh", func(t *testing.T) {
		old := NewJWTServiceWithSecret("segredo", time.Hour)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := old.GenerateToken(DefaultOperator)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)

		fresh, err := svc.RefreshToken(token)
		require.NoError(t, err)
		claims, err := svc.ValidateToken(fresh)
		require.NoError(t, err)
		assert.Equal(t, DefaultOperator, claims.Operator)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		_, err := NewJWTService()
		assert.ErrorIs(t, err, ErrMissingJWTKey)
	})

	t.Run("ExpirationFromEnv", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "k")
		t.Setenv("JWT_EXPIRATION_HOURS", "8")
		s, err := NewJWTService()
		require.NoError(t, err)
		assert.Equal(t, 8*time.Hour, s.Expiration())
	})
}

func TestPINVerifier(t *testing.T) {
	hash, err := HashPIN("4321")
	require.NoError(t, err)

	v := NewPINVerifier(hash)
	assert.NoError(t, v.Verify("4321"))
	assert.ErrorIs(t, v.Verify("1234"), ErrInvalidPIN)
	assert.ErrorIs(t, v.Verify(""), ErrInvalidPIN)

	t.Setenv("OPERATOR_PIN_HASH", "")
	_, err = NewPINVerifierFromEnv()
	assert.ErrorIs(t, err, ErrMissingPINKey)
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewJWTServiceWithSecret("segredo", time.Hour)

	r := gin.New()
	r.GET("/privado", JWTAuthMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, GetOperator(c))
	})

	token, err := svc.GenerateToken(DefaultOperator)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"SemCabecalho", "", http.StatusUnauthorized},
		{"FormatoInvalido", "Token " + token, http.StatusUnauthorized},
		{"TokenInvalido", "Bearer abc", http.StatusUnauthorized},
		{"Valido", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/privado", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, DefaultOperator, w.Body.String())
			}
		})
	}
}
