package forms

import "strings"

// Server error messages are matched by substring to decide which form field
// shows them. The substrings are locale-coupled by design: the backend answers
// in Russian and the keywords below are the ones its auth errors contain.
// Anything unmatched is surfaced as a form-level alert by the caller.

// RouteLoginError maps a server error message from the login endpoint to the
// form field that should display it. Password keywords win over login ones.
func RouteLoginError(message string) (string, bool) {
	switch {
	case strings.Contains(message, "пароль"):
		return FieldPassword, true
	case strings.Contains(message, "email"), strings.Contains(message, "логин"):
		return FieldLogin, true
	}
	return "", false
}

// RouteRegisterError maps a server error message from the registration
// endpoint to a form field. Login keywords are checked first, then nickname,
// then password.
func RouteRegisterError(message string) (string, bool) {
	switch {
	case strings.Contains(message, "email"), strings.Contains(message, "логин"):
		return FieldLogin, true
	case strings.Contains(message, "никнейм"):
		return FieldNickname, true
	case strings.Contains(message, "пароль"):
		return FieldPassword, true
	}
	return "", false
}
