package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDate
	KindBool
)

// Field describes one column of a catalog collection: how it appears on the
// wire (Name), where it lives in the database (Column), and how values are
// validated and filtered. The descriptor tables replace the per-column
// switch statements the old backend used for filtering.
type Field struct {
	Name     string
	Column   string
	Kind     Kind
	Required bool
	MaxLen   int
	Prefix   bool // prefix match instead of contains on column filters
	ReadOnly bool // never settable through create/update (e.g. Id)
}

const dateLayout = "2006-01-02"

// ValidateFields checks a decoded JSON body against the field descriptors and
// returns the typed values to persist, keyed by API field name. Unknown keys
// are ignored; on update (forCreate=false) absent fields stay untouched.
func ValidateFields(fields []Field, raw map[string]json.RawMessage, forCreate bool) (map[string]any, error) {
	values := map[string]any{}
	for _, field := range fields {
		if field.ReadOnly {
			continue
		}
		payload, present := raw[field.Name]
		if !present || string(payload) == "null" {
			if forCreate && field.Required {
				return nil, ErrBadRequest(requiredMessage(field))
			}
			continue
		}
		value, err := parseValue(field, payload)
		if err != nil {
			return nil, err
		}
		if forCreate && field.Required && field.Kind == KindText && value.(string) == "" {
			return nil, ErrBadRequest(requiredMessage(field))
		}
		values[field.Name] = value
	}
	return values, nil
}

func parseValue(field Field, payload json.RawMessage) (any, error) {
	switch field.Kind {
	case KindText:
		var value string
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, ErrBadRequest(typeMessage(field))
		}
		if field.MaxLen > 0 && utf8.RuneCountInString(value) > field.MaxLen {
			if field.Required {
				return nil, ErrBadRequest(fmt.Sprintf("El campo %q no puede exceder los %d caracteres.", field.Name, field.MaxLen))
			}
			return nil, ErrBadRequest(typeMessage(field))
		}
		return value, nil
	case KindInt:
		var value float64
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, ErrBadRequest(typeMessage(field))
		}
		if value != math.Trunc(value) {
			return nil, ErrBadRequest(typeMessage(field))
		}
		return int(value), nil
	case KindDate:
		var value string
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, ErrBadRequest(typeMessage(field))
		}
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, ErrBadRequest(typeMessage(field))
		}
		return parsed, nil
	case KindBool:
		var value bool
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, ErrBadRequest(typeMessage(field))
		}
		return value, nil
	}
	return nil, ErrBadRequest(typeMessage(field))
}

func requiredMessage(field Field) string {
	return fmt.Sprintf("El campo %q es requerido y debe ser %s.", field.Name, kindDescription(field.Kind))
}

func typeMessage(field Field) string {
	if field.Kind == KindText && field.MaxLen > 0 {
		return fmt.Sprintf("El campo %q debe ser una cadena de texto de máximo %d caracteres.", field.Name, field.MaxLen)
	}
	return fmt.Sprintf("El campo %q debe ser %s.", field.Name, kindDescription(field.Kind))
}

func kindDescription(kind Kind) string {
	switch kind {
	case KindText:
		return "una cadena de texto"
	case KindInt:
		return "un número entero"
	case KindDate:
		return "una fecha válida (formato YYYY-MM-DD)"
	case KindBool:
		return "un booleano (true/false)"
	}
	return "un valor válido"
}
