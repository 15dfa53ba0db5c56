/*
Package commands implements the АлёГараж command line client.

Every command builds the same dependency chain as a graphical client would:
config, credential file, API gateway, session store. The CLI is synchronous,
so the session store needs no locking.
*/
package commands

import (
	"github.com/spf13/cobra"

	"alegarazh/internal/app/forms"
	"alegarazh/internal/app/gateway"
	"alegarazh/internal/app/session"
	"alegarazh/internal/app/storage"
	"alegarazh/internal/configs"
	"alegarazh/internal/pkg/logx"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "alegarazh",
		Short:         "Command line client for the AlyoGarazh social network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newProfileCommand(),
		newUsersCommand(),
		newFriendsCommand(),
		newChatsCommand(),
	)

	return rootCmd
}

// app wires the client dependency chain for one CLI invocation.
type app struct {
	session  *session.Store
	api      *gateway.Client
	creds    *storage.FileStore
	throttle *forms.SubmitThrottle
}

// navigator logs screen transitions; the CLI has no screens to switch.
type navigator struct{}

func (navigator) Navigate(route string) {
	logx.Debug("navigate", "route", route)
}

func newApp() (*app, error) {
	cfg := configs.LoadClientConfig()
	logx.InitGlobalLogger(cfg.Environment == "development")

	creds, err := storage.NewFileStore(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	api := gateway.New(cfg.APIBaseURL, creds)

	return &app{
		session:  session.New(api, creds, navigator{}),
		api:      api,
		creds:    creds,
		throttle: forms.NewSubmitThrottle(forms.MinSubmitInterval),
	}, nil
}
