package auth

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPIN    = errors.New("PIN inválido")
	ErrMissingPINKey = errors.New("OPERATOR_PIN_HASH não configurado")
)

// DefaultOperator é o nome gravado no token do único operador do caixa
const DefaultOperator = "operador"

// PINVerifier confere o PIN do operador contra um hash bcrypt
type PINVerifier struct {
	hash []byte
}

// NewPINVerifierFromEnv cria o verificador a partir de OPERATOR_PIN_HASH
func NewPINVerifierFromEnv() (*PINVerifier, error) {
	hash := strings.TrimSpace(os.Getenv("OPERATOR_PIN_HASH"))
	if hash == "" {
		return nil, ErrMissingPINKey
	}
	return NewPINVerifier(hash), nil
}

// NewPINVerifier cria o verificador com o hash informado
func NewPINVerifier(hash string) *PINVerifier {
	return &PINVerifier{hash: []byte(hash)}
}

// Verify retorna ErrInvalidPIN quando o PIN não confere
func (v *PINVerifier) Verify(pin string) error {
	if pin == "" {
		return ErrInvalidPIN
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(pin)); err != nil {
		return ErrInvalidPIN
	}
	return nil
}

// HashPIN gera o hash bcrypt para OPERATOR_PIN_HASH
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
