// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nikForm struct {
	NIK   string `validate:"required,nik"`
	Phone string `validate:"required,phone_id"`
}

func TestNIKValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&nikForm{NIK: "3201012345678901", Phone: "081234567890"}))

	tests := []nikForm{
		{NIK: "12345", Phone: "081234567890"},             // too short
		{NIK: "32010123456789012", Phone: "081234567890"}, // too long
		{NIK: "32010123456789ab", Phone: "081234567890"},  // non-digit
		{NIK: "3201012345678901", Phone: "021234567"},     // landline
		{NIK: "3201012345678901", Phone: "8123"},          // truncated
	}
	for _, form := range tests {
		assert.Error(t, ValidateStruct(&form), form.NIK+" / "+form.Phone)
	}
}

func TestPhoneIDAcceptsPrefixVariants(t *testing.T) {
	for _, phone := range []string{"081234567890", "6281234567890", "+6281234567890"} {
		form := nikForm{NIK: "3201012345678901", Phone: phone}
		assert.NoError(t, ValidateStruct(&form), phone)
	}
}

type passwordForm struct {
	Password string `validate:"required,strong_password"`
}

func TestStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordForm{Password: "Damai#2026x"}))

	for _, pw := range []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoNumbers!!", "NoSpecial123"} {
		assert.Error(t, ValidateStruct(&passwordForm{Password: pw}), pw)
	}
}
