package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number é um valor numérico tolerante na leitura de documentos JSON.
// Campos ausentes, nulos, booleanos ou textos não numéricos viram 0.
type Number float64

// Float retorna o valor como float64
func (n Number) Float() float64 {
	return float64(n)
}

// UnmarshalJSON implementa json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(parseLenient(data))
	return nil
}

// MarshalJSON implementa json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return json.Marshal(f)
}

// Int é um inteiro tolerante na leitura de documentos JSON
type Int int

// UnmarshalJSON implementa json.Unmarshaler
func (i *Int) UnmarshalJSON(data []byte) error {
	*i = Int(math.Trunc(parseLenient(data)))
	return nil
}

func parseLenient(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return 0
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
