package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNickname(t *testing.T) {
	cases := []struct {
		name     string
		nickname string
		valid    bool
	}{
		{"latin", "Garage42", true},
		{"cyrillic", "Гараж", true},
		{"mixed", "Гараж77x", true},
		// The charset range а-я does not include ё.
		{"cyrillic yo", "Алёна", false},
		{"min length", "abc", true},
		{"max length", "a1234567890123456789", true},
		{"empty", "", false},
		{"spaces only", "   ", false},
		{"too short", "ab", false},
		{"too long", "a12345678901234567890", false},
		{"underscore", "nick_name", false},
		{"inner space", "nick name", false},
		{"emoji", "nick😀abc", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateNickname(tc.nickname)
			assert.Equal(t, tc.valid, res.IsValid)
			if tc.valid {
				assert.Empty(t, res.Message)
			} else {
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestValidateNickname_Messages(t *testing.T) {
	assert.Equal(t, "Никнейм обязателен", ValidateNickname("").Message)
	assert.Equal(t, "Ник должен содержать минимум 3 символа", ValidateNickname("ab").Message)
	assert.Equal(t, "Ник должен содержать максимум 20 символов", ValidateNickname("a12345678901234567890").Message)
	assert.Equal(t, "Ник может содержать только буквы и цифры", ValidateNickname("a_b").Message)
}

func TestValidateLogin(t *testing.T) {
	cases := []struct {
		name  string
		login string
		valid bool
	}{
		{"plain", "a@b.com", true},
		{"dotted local", "first.last@mail.ru", true},
		{"empty", "", false},
		{"spaces only", "  ", false},
		{"no at sign", "abc", false},
		{"no domain dot", "a@bcom", false},
		{"space inside", "a b@c.com", false},
		{"double at", "a@@b.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateLogin(tc.login)
			assert.Equal(t, tc.valid, res.IsValid, "login %q", tc.login)
		})
	}
}

func TestValidateLogin_Messages(t *testing.T) {
	assert.Equal(t, "Email обязателен", ValidateLogin("").Message)
	assert.Equal(t, "Email должен содержать минимум 3 символа", ValidateLogin("a@").Message)

	long := "a@" + strings.Repeat("b", 47) + ".c" // 51 chars
	assert.Equal(t, "Email должен содержать максимум 50 символов", ValidateLogin(long).Message)
	assert.Equal(t, "Введите корректный email", ValidateLogin("abc").Message)
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Abc12345").IsValid)

	res := ValidatePassword("")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Пароль обязателен", res.Message)

	res = ValidatePassword("Ab1")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Пароль должен содержать минимум 8 символов", res.Message)

	res = ValidatePassword("abc12345")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Пароль должен содержать хотя бы одну заглавную букву", res.Message)

	res = ValidatePassword("ABCDEFGH")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Пароль должен содержать хотя бы одну цифру", res.Message)
}

func TestValidatePasswordForLogin(t *testing.T) {
	// Only presence is enforced in the login context.
	assert.True(t, ValidatePasswordForLogin("x").IsValid)
	assert.True(t, ValidatePasswordForLogin("weak").IsValid)

	res := ValidatePasswordForLogin("")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Пароль обязателен", res.Message)
}

func TestValidateConfirmPassword(t *testing.T) {
	assert.True(t, ValidateConfirmPassword("Secret1x", "Secret1x").IsValid)

	res := ValidateConfirmPassword("A", "B")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Пароли не совпадают", res.Message)

	// Case-sensitive, no trimming.
	assert.False(t, ValidateConfirmPassword("Secret1x", "secret1x").IsValid)
	assert.False(t, ValidateConfirmPassword("Secret1x", "Secret1x ").IsValid)

	res = ValidateConfirmPassword("Secret1x", "")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Подтверждение пароля обязательно", res.Message)
}

func TestCheckPasswordRequirements(t *testing.T) {
	req := CheckPasswordRequirements("")
	assert.False(t, req.MinLength)
	assert.False(t, req.HasUppercase)
	assert.False(t, req.HasNumber)

	// Each sub-check is evaluated independently of the others.
	req = CheckPasswordRequirements("A1")
	assert.False(t, req.MinLength)
	assert.True(t, req.HasUppercase)
	assert.True(t, req.HasNumber)

	req = CheckPasswordRequirements("abcdefgh")
	assert.True(t, req.MinLength)
	assert.False(t, req.HasUppercase)
	assert.False(t, req.HasNumber)

	req = CheckPasswordRequirements("Abc12345")
	assert.True(t, req.MinLength)
	assert.True(t, req.HasUppercase)
	assert.True(t, req.HasNumber)
}
