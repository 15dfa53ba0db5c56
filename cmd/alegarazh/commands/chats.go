package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alegarazh/internal/app/model"
)

func newChatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Chat commands",
	}

	cmd.AddCommand(
		newChatsListCommand(),
		newChatsCreateCommand(),
		newChatsMessagesCommand(),
		newChatsSendCommand(),
	)

	return cmd
}

func newChatsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your conversations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			chats, err := a.api.MyChats(cmd.Context())
			if err != nil {
				return err
			}

			if len(chats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "У вас пока нет чатов")
				return nil
			}
			for _, chat := range chats {
				line := fmt.Sprintf("%s  %s (%s)", chat.ID, chat.Name, chat.Type)
				if chat.LastMessage != "" {
					line += "  — " + chat.LastMessage
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newChatsCreateCommand() *cobra.Command {
	var name, chatType string
	var participants []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a direct or group conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			chat, err := a.api.CreateChat(cmd.Context(), model.ChatCreate{
				Name:           name,
				Type:           chatType,
				ParticipantIDs: participants,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Чат создан: %s  %s (%s)\n", chat.ID, chat.Name, chat.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "chat name (optional for direct chats)")
	cmd.Flags().StringVar(&chatType, "type", "", "chat type: direct or group")
	cmd.Flags().StringSliceVar(&participants, "participant", nil, "participant user id (repeatable)")

	return cmd
}

func newChatsMessagesCommand() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "messages <chat-id>",
		Short: "Show one page of a chat's history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			history, err := a.api.ChatMessages(cmd.Context(), args[0], page, limit)
			if err != nil {
				return err
			}

			for _, msg := range history.Messages {
				sender := msg.SenderID
				if msg.Sender != nil {
					sender = msg.Sender.Nickname
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", msg.Timestamp, sender, msg.Text)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Страница %d из %d сообщений", history.Page, history.Total)
			if history.HasMore {
				fmt.Fprint(cmd.OutOrStdout(), " (есть ещё)")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 50, "messages per page")

	return cmd
}

func newChatsSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send <chat-id> <text>...",
		Short: "Send a message to a chat",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")

			msg, err := a.api.SendMessage(cmd.Context(), args[0], text)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Отправлено в %s: %s\n", msg.ChatID, msg.Text)
			return nil
		},
	}
}
