/*
Package forms implements the client-side validation layer of АлёГараж:
single-field validators, whole-form aggregation for the login and registration
forms, per-field form state with blur/submit semantics, and the mapping of
server error messages back onto form fields.

Validators are pure functions. Each checks its rules in a fixed order and
stops at the first failure; messages are the user-facing Russian strings
rendered inline next to the field.
*/
package forms

import (
	"regexp"
	"unicode/utf8"
)

// Field names used as keys in FormErrors. They match the JSON field names of
// the auth endpoints.
const (
	FieldNickname        = "nickname"
	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Nickname and login length bounds, in runes.
const (
	NicknameMinLen = 3
	NicknameMaxLen = 20
	LoginMinLen    = 3
	LoginMaxLen    = 50
	PasswordMinLen = 8
)

var (
	nicknameCharsRegex = regexp.MustCompile(`^[а-яА-Яa-zA-Z0-9]+$`)
	emailRegex         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRegex         = regexp.MustCompile(`[A-Z]`)
	digitRegex         = regexp.MustCompile(`[0-9]`)
	spaceOnlyRegex     = regexp.MustCompile(`^\s*$`)
)

// ValidationResult is the verdict of a single field validator.
// Message is empty exactly when IsValid is true.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

func valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

func invalid(message string) ValidationResult {
	return ValidationResult{IsValid: false, Message: message}
}

// ValidateNickname checks a nickname: required after trim, 3-20 runes,
// Latin/Cyrillic letters and digits only.
func ValidateNickname(nickname string) ValidationResult {
	if spaceOnlyRegex.MatchString(nickname) {
		return invalid("Никнейм обязателен")
	}

	length := utf8.RuneCountInString(nickname)
	if length < NicknameMinLen {
		return invalid("Ник должен содержать минимум 3 символа")
	}
	if length > NicknameMaxLen {
		return invalid("Ник должен содержать максимум 20 символов")
	}

	if !nicknameCharsRegex.MatchString(nickname) {
		return invalid("Ник может содержать только буквы и цифры")
	}

	return valid()
}

// ValidateLogin checks the email-shaped login: required after trim,
// 3-50 runes, email format.
func ValidateLogin(login string) ValidationResult {
	if spaceOnlyRegex.MatchString(login) {
		return invalid("Email обязателен")
	}

	length := utf8.RuneCountInString(login)
	if length < LoginMinLen {
		return invalid("Email должен содержать минимум 3 символа")
	}
	if length > LoginMaxLen {
		return invalid("Email должен содержать максимум 50 символов")
	}

	if !emailRegex.MatchString(login) {
		return invalid("Введите корректный email")
	}

	return valid()
}

// ValidatePassword checks a registration password: required, at least 8 runes,
// at least one uppercase ASCII letter, at least one digit.
func ValidatePassword(password string) ValidationResult {
	if password == "" {
		return invalid("Пароль обязателен")
	}

	if utf8.RuneCountInString(password) < PasswordMinLen {
		return invalid("Пароль должен содержать минимум 8 символов")
	}

	if !upperRegex.MatchString(password) {
		return invalid("Пароль должен содержать хотя бы одну заглавную букву")
	}

	if !digitRegex.MatchString(password) {
		return invalid("Пароль должен содержать хотя бы одну цифру")
	}

	return valid()
}

// ValidatePasswordForLogin only requires the password to be present; the
// server performs the real credential check on login.
func ValidatePasswordForLogin(password string) ValidationResult {
	if password == "" {
		return invalid("Пароль обязателен")
	}
	return valid()
}

// ValidateConfirmPassword requires the confirmation to be present and to match
// the password exactly. No trimming, case-sensitive.
func ValidateConfirmPassword(password, confirmPassword string) ValidationResult {
	if confirmPassword == "" {
		return invalid("Подтверждение пароля обязательно")
	}

	if password != confirmPassword {
		return invalid("Пароли не совпадают")
	}

	return valid()
}

// PasswordRequirements reports the three registration password sub-checks
// independently, for a live checklist next to the password field. Unlike
// ValidatePassword it never short-circuits.
type PasswordRequirements struct {
	MinLength    bool `json:"minLength"`
	HasUppercase bool `json:"hasUppercase"`
	HasNumber    bool `json:"hasNumber"`
}

// CheckPasswordRequirements evaluates all three sub-checks regardless of each
// other's outcome.
func CheckPasswordRequirements(password string) PasswordRequirements {
	return PasswordRequirements{
		MinLength:    utf8.RuneCountInString(password) >= PasswordMinLen,
		HasUppercase: upperRegex.MatchString(password),
		HasNumber:    digitRegex.MatchString(password),
	}
}
