package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
)

const issuer = "la-tostadora-api"

// JWTClaims representa as claims do token do operador
type JWTClaims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService a partir de JWT_SECRET_KEY e JWT_EXPIRATION_HOURS
func NewJWTService() (*JWTService, error) {
	secretKey := os.Getenv("JWT_SECRET_KEY")
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}

	// Duração padrão de 24 horas se não for configurado
	expiration := 24 * time.Hour
	if expirationStr := os.Getenv("JWT_EXPIRATION_HOURS"); expirationStr != "" {
		if d, err := time.ParseDuration(expirationStr + "h"); err == nil && d > 0 {
			expiration = d
		}
	}

	return NewJWTServiceWithSecret(secretKey, expiration), nil
}

// NewJWTServiceWithSecret cria um JWTService com segredo e validade explícitos
func NewJWTServiceWithSecret(secret string, expiration time.Duration) *JWTService {
	return &JWTService{
		secretKey:  []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Expiration retorna a validade dos tokens emitidos
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken gera um token JWT para o operador
func (s *JWTService) GenerateToken(operator string) (string, error) {
	now := s.now()

	claims := JWTClaims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   operator,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, s.keyFunc,
		jwt.WithTimeFunc(s.now), jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// RefreshToken emite um novo token para um token válido ou apenas expirado
func (s *JWTService) RefreshToken(tokenString string) (string, error) {
	if _, err := s.ValidateToken(tokenString); err != nil && !errors.Is(err, ErrExpiredToken) {
		return "", err
	}

	// o token pode estar expirado, mas a assinatura ainda precisa conferir
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, s.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return "", ErrInvalidClaims
	}
	return s.GenerateToken(claims.Operator)
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	// Verificar o método de assinatura
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.secretKey, nil
}
