package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the Spanish labels shown on the site
var FieldLabels = map[string]string{
	"Name":             "Nombre",
	"Email":            "Correo electrónico",
	"Phone":            "Teléfono",
	"Subject":          "Asunto",
	"Message":          "Mensaje",
	"PreferredContact": "Medio de contacto preferido",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// FirstMessage returns the first formatted message for err, or "" when err is nil.
func FirstMessage(err error) string {
	if err == nil {
		return ""
	}
	return FormatValidationErrors(err)[0]
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: Campo obligatorio", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Mínimo %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: Mínimo %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Máximo %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: Máximo %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: Debe ser uno de: %s", label, formatOneOfOptions(param))
	case "email":
		return fmt.Sprintf("%s: Formato de correo no válido", label)
	case "valid_name":
		return fmt.Sprintf("%s: Solo se permiten letras, espacios y . ' -", label)
	case "valid_phone":
		return fmt.Sprintf("%s: Formato de teléfono no válido", label)
	case "no_emoji":
		return fmt.Sprintf("%s: No puede contener emojis ni símbolos especiales", label)
	default:
		return fmt.Sprintf("%s: Validación fallida (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}

func formatOneOfOptions(param string) string {
	options := strings.Fields(param)
	formatted := make([]string, len(options))
	for i, opt := range options {
		formatted[i] = formatEnumValue(opt)
	}
	return strings.Join(formatted, ", ")
}

func formatEnumValue(value string) string {
	enumLabels := map[string]string{
		"email":    "correo",
		"phone":    "teléfono",
		"whatsapp": "WhatsApp",
	}
	if label, ok := enumLabels[value]; ok {
		return label
	}
	return value
}
