package forms

// formKind selects which validator set a FormState runs.
type formKind int

const (
	registerForm formKind = iota
	loginForm
)

// FormState tracks one form's field values, error messages and touched flags.
//
// The lifecycle mirrors the form screens: SetValue on every edit (which clears
// the field's error immediately), Blur when focus leaves a field (which marks
// it touched and recomputes its error), Submit on form submission (which
// validates everything). Errors are never computed eagerly on edits.
type FormState struct {
	kind    formKind
	values  map[string]string
	errors  FormErrors
	touched map[string]bool
}

// NewRegisterForm creates empty state for the registration form.
func NewRegisterForm() *FormState {
	return newFormState(registerForm, FieldNickname, FieldLogin, FieldPassword, FieldConfirmPassword)
}

// NewLoginForm creates empty state for the login form.
func NewLoginForm() *FormState {
	return newFormState(loginForm, FieldLogin, FieldPassword)
}

func newFormState(kind formKind, fields ...string) *FormState {
	f := &FormState{
		kind:    kind,
		values:  make(map[string]string, len(fields)),
		errors:  FormErrors{},
		touched: make(map[string]bool, len(fields)),
	}
	for _, field := range fields {
		f.values[field] = ""
		f.touched[field] = false
	}
	return f
}

// SetValue records a new value for the field and clears its error. The error
// is recomputed only on the next Blur or Submit.
func (f *FormState) SetValue(field, value string) {
	f.values[field] = value
	delete(f.errors, field)
}

// Blur marks the field as touched and validates it in isolation.
func (f *FormState) Blur(field string) {
	f.touched[field] = true

	res := f.validateField(field)
	if res.IsValid {
		delete(f.errors, field)
	} else {
		f.errors[field] = res.Message
	}
}

// Submit validates the whole form, stores the resulting error map and reports
// overall validity.
func (f *FormState) Submit() (FormErrors, bool) {
	var errors FormErrors
	switch f.kind {
	case loginForm:
		errors = ValidateLoginForm(LoginFormData{
			Login:    f.values[FieldLogin],
			Password: f.values[FieldPassword],
		})
	default:
		errors = ValidateForm(FormData{
			Nickname:        f.values[FieldNickname],
			Login:           f.values[FieldLogin],
			Password:        f.values[FieldPassword],
			ConfirmPassword: f.values[FieldConfirmPassword],
		})
	}

	f.errors = errors
	for field := range f.touched {
		f.touched[field] = true
	}
	return errors, errors.Valid()
}

// SetError attaches a server-originated error message to the field.
func (f *FormState) SetError(field, message string) {
	f.errors[field] = message
}

// Value returns the current raw value of the field.
func (f *FormState) Value(field string) string {
	return f.values[field]
}

// Error returns the current error message for the field, empty if valid.
func (f *FormState) Error(field string) string {
	return f.errors[field]
}

// Touched reports whether the field has been blurred or submitted.
func (f *FormState) Touched(field string) bool {
	return f.touched[field]
}

func (f *FormState) validateField(field string) ValidationResult {
	switch field {
	case FieldNickname:
		return ValidateNickname(f.values[FieldNickname])
	case FieldLogin:
		return ValidateLogin(f.values[FieldLogin])
	case FieldPassword:
		if f.kind == loginForm {
			return ValidatePasswordForLogin(f.values[FieldPassword])
		}
		return ValidatePassword(f.values[FieldPassword])
	case FieldConfirmPassword:
		return ValidateConfirmPassword(f.values[FieldPassword], f.values[FieldConfirmPassword])
	}
	return valid()
}
