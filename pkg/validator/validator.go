package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return "Payload tidak valid"
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", field)
	case "email":
		return fmt.Sprintf("%s harus berupa email yang valid", field)
	case "url":
		return fmt.Sprintf("%s harus berupa URL yang valid", field)
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", field, fe.Param())
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s minimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s maksimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Email":            "Email",
		"Password":         "Password",
		"Role":             "Role",
		"DisplayName":      "Nama tampilan",
		"Phone":            "Nomor telepon",
		"FileURL":          "URL file",
		"FileName":         "Nama file",
		"FileCategory":     "Kategori file",
		"PengaduNama":      "Nama pengadu",
		"RingkasanMasalah": "Ringkasan masalah",
		"Tanggal":          "Tanggal",
		"JenisTL":          "Jenis tindak lanjut",
		"RefreshToken":     "Refresh token",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
