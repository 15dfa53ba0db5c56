package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForm(t *testing.T) {
	good := FormData{
		Nickname:        "Garage42",
		Login:           "a@b.com",
		Password:        "Secret1x",
		ConfirmPassword: "Secret1x",
	}

	errors := ValidateForm(good)
	assert.True(t, errors.Valid())
	assert.Empty(t, errors)

	// Every field is validated even when an earlier one fails.
	bad := FormData{
		Nickname:        "x",
		Login:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	}

	errors = ValidateForm(bad)
	assert.False(t, errors.Valid())
	assert.Len(t, errors, 4)
	assert.Contains(t, errors, FieldNickname)
	assert.Contains(t, errors, FieldLogin)
	assert.Contains(t, errors, FieldPassword)
	assert.Contains(t, errors, FieldConfirmPassword)
}

func TestValidateForm_Idempotent(t *testing.T) {
	data := FormData{
		Nickname:        "ab",
		Login:           "abc",
		Password:        "ABCDEFGH",
		ConfirmPassword: "abcdefgh",
	}

	first := ValidateForm(data)
	second := ValidateForm(data)
	assert.Equal(t, first, second)
}

func TestValidateLoginForm(t *testing.T) {
	errors := ValidateLoginForm(LoginFormData{Login: "a@b.com", Password: "anything"})
	assert.True(t, errors.Valid())

	// A weak password passes here; only presence is checked on login.
	errors = ValidateLoginForm(LoginFormData{Login: "a@b.com", Password: "weak"})
	assert.True(t, errors.Valid())

	errors = ValidateLoginForm(LoginFormData{Login: "", Password: ""})
	assert.Len(t, errors, 2)
	assert.Equal(t, "Email обязателен", errors[FieldLogin])
	assert.Equal(t, "Пароль обязателен", errors[FieldPassword])

	again := ValidateLoginForm(LoginFormData{Login: "", Password: ""})
	assert.Equal(t, errors, again)
}

func TestFormState_BlurAndSubmit(t *testing.T) {
	f := NewLoginForm()

	assert.False(t, f.Touched(FieldLogin))
	assert.Empty(t, f.Error(FieldLogin))

	// Typing never produces an error on its own.
	f.SetValue(FieldLogin, "abc")
	assert.Empty(t, f.Error(FieldLogin))

	// Blur computes it.
	f.Blur(FieldLogin)
	assert.True(t, f.Touched(FieldLogin))
	assert.Equal(t, "Введите корректный email", f.Error(FieldLogin))

	// Editing the value clears the error immediately.
	f.SetValue(FieldLogin, "a@b.com")
	assert.Empty(t, f.Error(FieldLogin))

	f.SetValue(FieldPassword, "pw")
	errors, ok := f.Submit()
	assert.True(t, ok)
	assert.Empty(t, errors)
}

func TestFormState_RegisterConfirmPassword(t *testing.T) {
	f := NewRegisterForm()
	f.SetValue(FieldPassword, "Secret1x")
	f.SetValue(FieldConfirmPassword, "Secret1y")

	f.Blur(FieldConfirmPassword)
	assert.Equal(t, "Пароли не совпадают", f.Error(FieldConfirmPassword))

	f.SetValue(FieldConfirmPassword, "Secret1x")
	assert.Empty(t, f.Error(FieldConfirmPassword))

	f.SetValue(FieldNickname, "Garage42")
	f.SetValue(FieldLogin, "a@b.com")
	_, ok := f.Submit()
	assert.True(t, ok)
	assert.True(t, f.Touched(FieldNickname))
}

func TestFormState_ServerError(t *testing.T) {
	f := NewLoginForm()
	f.SetError(FieldPassword, "Неверный email или пароль")
	assert.Equal(t, "Неверный email или пароль", f.Error(FieldPassword))

	// Re-typing clears the routed server error like any other.
	f.SetValue(FieldPassword, "Another1")
	assert.Empty(t, f.Error(FieldPassword))
}

func TestRouteLoginError(t *testing.T) {
	field, ok := RouteLoginError("Неверный email или пароль")
	require.True(t, ok)
	// Password keywords win over login ones on the login form.
	assert.Equal(t, FieldPassword, field)

	field, ok = RouteLoginError("Пользователь с таким email не найден")
	require.True(t, ok)
	assert.Equal(t, FieldLogin, field)

	field, ok = RouteLoginError("Неверный логин")
	require.True(t, ok)
	assert.Equal(t, FieldLogin, field)

	_, ok = RouteLoginError("Что-то пошло не так")
	assert.False(t, ok)
}

func TestRouteRegisterError(t *testing.T) {
	field, ok := RouteRegisterError("Пользователь с таким email уже существует")
	require.True(t, ok)
	assert.Equal(t, FieldLogin, field)

	field, ok = RouteRegisterError("Этот никнейм уже занят")
	require.True(t, ok)
	assert.Equal(t, FieldNickname, field)

	field, ok = RouteRegisterError("Слишком простой пароль")
	require.True(t, ok)
	assert.Equal(t, FieldPassword, field)

	_, ok = RouteRegisterError("Сервис недоступен")
	assert.False(t, ok)
}

func TestSubmitThrottle(t *testing.T) {
	th := NewSubmitThrottle(50 * time.Millisecond)

	assert.True(t, th.Allow())
	assert.False(t, th.Allow(), "second submit inside the interval is dropped")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, th.Allow())
}
