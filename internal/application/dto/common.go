package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/storetrack-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP. Code es estable y legible por máquina.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// OptionalBool booleano opcional que acepta true/false o "true"/"false" en JSON.
type OptionalBool struct {
	Set   bool
	Value bool
}

// UnmarshalJSON implementa json.Unmarshaler. null y "" equivalen a no enviado.
func (b *OptionalBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(s) {
	case "", "null":
		*b = OptionalBool{}
	case "true":
		*b = OptionalBool{Set: true, Value: true}
	case "false":
		*b = OptionalBool{Set: true, Value: false}
	default:
		return fmt.Errorf("booleano inválido: %s", s)
	}
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (b OptionalBool) MarshalJSON() ([]byte, error) {
	if !b.Set {
		return []byte("null"), nil
	}
	return json.Marshal(b.Value)
}

// Ptr devuelve el valor como *bool (nil si no se envió).
func (b OptionalBool) Ptr() *bool {
	if !b.Set {
		return nil
	}
	v := b.Value
	return &v
}

// ParseDateBound interpreta una fecha RFC3339 o YYYY-MM-DD. Vacío devuelve nil.
// Con endOfDay, una fecha sin hora se extiende hasta el último instante de ese día.
func ParseDateBound(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ParsePeriod interpreta un rango de fechas opcional y valida que start <= end.
func ParsePeriod(startStr, endStr string) (start, end *time.Time, err error) {
	if start, err = ParseDateBound(startStr, false); err != nil {
		return nil, nil, err
	}
	if end, err = ParseDateBound(endStr, true); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("%w: startDate no puede ser posterior a endDate", domain.ErrInvalidInput)
	}
	return start, end, nil
}
