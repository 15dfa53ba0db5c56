package forms

// FormData holds the raw values of the registration form.
type FormData struct {
	Nickname        string
	Login           string
	Password        string
	ConfirmPassword string
}

// LoginFormData holds the raw values of the login form.
type LoginFormData struct {
	Login    string
	Password string
}

// FormErrors maps a field name to its current error message. A field absent
// from the map is valid.
type FormErrors map[string]string

// Valid reports whether the whole form passed validation.
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

// ValidateForm validates the registration form. Every field validator runs
// unconditionally; failures are collected into the returned error map.
func ValidateForm(data FormData) FormErrors {
	errors := FormErrors{}

	if res := ValidateNickname(data.Nickname); !res.IsValid {
		errors[FieldNickname] = res.Message
	}

	if res := ValidateLogin(data.Login); !res.IsValid {
		errors[FieldLogin] = res.Message
	}

	if res := ValidatePassword(data.Password); !res.IsValid {
		errors[FieldPassword] = res.Message
	}

	if res := ValidateConfirmPassword(data.Password, data.ConfirmPassword); !res.IsValid {
		errors[FieldConfirmPassword] = res.Message
	}

	return errors
}

// ValidateLoginForm validates the login form. The password is only checked
// for presence; the server performs the real credential check.
func ValidateLoginForm(data LoginFormData) FormErrors {
	errors := FormErrors{}

	if res := ValidateLogin(data.Login); !res.IsValid {
		errors[FieldLogin] = res.Message
	}

	if res := ValidatePasswordForLogin(data.Password); !res.IsValid {
		errors[FieldPassword] = res.Message
	}

	return errors
}
