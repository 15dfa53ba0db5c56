package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"alegarazh/internal/app/model"
)

func newUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User directory commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search",
		Short: "List users that can be added as friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			users, err := a.api.SearchUsers(cmd.Context())
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Никого не найдено")
				return nil
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", u.ID, u.Nickname)
			}
			return nil
		},
	})

	return cmd
}

func newFriendsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Friends list commands",
	}

	cmd.AddCommand(
		newFriendsListCommand(),
		newFriendsSearchCommand(),
		newFriendsAddCommand(),
		newFriendsRemoveCommand(),
	)

	return cmd
}

func printFriends(cmd *cobra.Command, friends []model.Friend) {
	if len(friends) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Список друзей пуст")
		return
	}
	for _, f := range friends {
		line := fmt.Sprintf("%s  %s [%s]", f.ID, f.Nickname, f.Status)
		if f.StatusText != "" {
			line += "  " + f.StatusText
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

func newFriendsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			friends, err := a.api.MyFriends(cmd.Context())
			if err != nil {
				return err
			}

			printFriends(cmd, friends)
			return nil
		},
	}
}

func newFriendsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Filter your friends by nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			friends, err := a.api.SearchFriends(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printFriends(cmd, friends)
			return nil
		},
	}
}

func newFriendsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <user-id>",
		Short: "Add a user to your friends list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if err := a.api.AddFriend(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Пользователь добавлен в друзья")
			return nil
		},
	}
}

func newFriendsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Remove a user from your friends list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if err := a.api.RemoveFriend(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Пользователь удалён из друзей")
			return nil
		},
	}
}
