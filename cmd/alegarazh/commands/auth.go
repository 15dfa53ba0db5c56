package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alegarazh/internal/app/forms"
	"alegarazh/internal/app/gateway"
	"alegarazh/internal/app/model"
)

// fieldOrder fixes the display order of form errors.
var fieldOrder = []string{
	forms.FieldNickname,
	forms.FieldLogin,
	forms.FieldPassword,
	forms.FieldConfirmPassword,
}

func printFormErrors(cmd *cobra.Command, formErrors forms.FormErrors) {
	for _, field := range fieldOrder {
		if msg := formErrors[field]; msg != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
		}
	}
}

func newLoginCommand() *cobra.Command {
	var login, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			form := forms.NewLoginForm()
			form.SetValue(forms.FieldLogin, login)
			form.SetValue(forms.FieldPassword, password)

			if formErrors, ok := form.Submit(); !ok {
				printFormErrors(cmd, formErrors)
				return errors.New("форма заполнена с ошибками")
			}

			if !a.throttle.Allow() {
				return errors.New("слишком частые отправки формы, подождите секунду")
			}

			if err := a.session.Login(cmd.Context(), form.Value(forms.FieldLogin), form.Value(forms.FieldPassword)); err != nil {
				var reqErr *gateway.RequestError
				if errors.As(err, &reqErr) {
					if field, ok := forms.RouteLoginError(reqErr.Message); ok {
						form.SetError(field, reqErr.Message)
						printFormErrors(cmd, forms.FormErrors{field: reqErr.Message})
						return errors.New("вход не выполнен")
					}
				}
				return err
			}

			user := a.session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Вы вошли как %s (%s)\n", user.Nickname, user.Login)
			return nil
		},
	}

	cmd.Flags().StringVarP(&login, "login", "l", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

func newRegisterCommand() *cobra.Command {
	var nickname, login, password, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			form := forms.NewRegisterForm()
			form.SetValue(forms.FieldNickname, nickname)
			form.SetValue(forms.FieldLogin, login)
			form.SetValue(forms.FieldPassword, password)
			form.SetValue(forms.FieldConfirmPassword, confirm)

			if formErrors, ok := form.Submit(); !ok {
				printFormErrors(cmd, formErrors)
				return errors.New("форма заполнена с ошибками")
			}

			if !a.throttle.Allow() {
				return errors.New("слишком частые отправки формы, подождите секунду")
			}

			data := model.RegisterRequest{
				Nickname:        form.Value(forms.FieldNickname),
				Login:           form.Value(forms.FieldLogin),
				Password:        form.Value(forms.FieldPassword),
				ConfirmPassword: form.Value(forms.FieldConfirmPassword),
			}

			if err := a.session.Register(cmd.Context(), data); err != nil {
				var reqErr *gateway.RequestError
				if errors.As(err, &reqErr) {
					if field, ok := forms.RouteRegisterError(reqErr.Message); ok {
						form.SetError(field, reqErr.Message)
						printFormErrors(cmd, forms.FormErrors{field: reqErr.Message})
						return errors.New("регистрация не выполнена")
					}
				}
				return err
			}

			user := a.session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Аккаунт создан. Вы вошли как %s (%s)\n", user.Nickname, user.Login)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nickname, "nickname", "n", "", "display name, 3-20 letters and digits")
	cmd.Flags().StringVarP(&login, "login", "l", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&confirm, "confirm-password", "c", "", "password confirmation")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			a.session.Logout(cmd.Context())

			fmt.Fprintln(cmd.OutOrStdout(), "Вы вышли из аккаунта")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			a.session.Bootstrap(cmd.Context())

			user := a.session.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Вы не авторизованы")
				return nil
			}

			printUser(cmd, *user)
			return nil
		},
	}
}

func printUser(cmd *cobra.Command, user model.User) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", user.Nickname, user.Login)
	fmt.Fprintf(out, "  id:     %s\n", user.ID)
	if user.Status != "" {
		fmt.Fprintf(out, "  статус: %s\n", user.Status)
	}
	if user.Avatar != "" {
		fmt.Fprintf(out, "  аватар: %s\n", user.Avatar)
	}
}
