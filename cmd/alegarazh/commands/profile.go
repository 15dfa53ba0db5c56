package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alegarazh/internal/app/model"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile commands",
	}

	cmd.AddCommand(newProfileUpdateCommand())

	return cmd
}

func newProfileUpdateCommand() *cobra.Command {
	var nickname, status, avatar string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change nickname, status or avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			a.session.Bootstrap(cmd.Context())
			if !a.session.Authenticated() {
				return errors.New("требуется вход: выполните alegarazh login")
			}

			// Only flags the user actually passed become part of the update;
			// everything else stays untouched on the server.
			var update model.ProfileUpdate
			if cmd.Flags().Changed("nickname") {
				update.Nickname = &nickname
			}
			if cmd.Flags().Changed("status") {
				update.Status = &status
			}
			if cmd.Flags().Changed("avatar") {
				update.Avatar = &avatar
			}

			if update.Nickname == nil && update.Status == nil && update.Avatar == nil {
				return errors.New("укажите хотя бы один флаг: --nickname, --status или --avatar")
			}

			if err := a.session.UpdateUser(cmd.Context(), update); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Профиль обновлён")
			printUser(cmd, *a.session.User())
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "new display name")
	cmd.Flags().StringVar(&status, "status", "", "new free-text status")
	cmd.Flags().StringVar(&avatar, "avatar", "", "new avatar URL")

	return cmd
}
