package main

import (
	"net/http"
	"os"
	"time"

	"github.com/assetops/backend/internal/client"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080/api/v1"

type rootOptions struct {
	server      string
	sessionPath string
	timeout     time.Duration

	client *client.Client
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "assetctl",
		Short: "AssetOps console",
		Long: client.StyleTitle.Render("assetctl") + " - AssetOps console\n\n" +
			"Sign in to an AssetOps server, then list, inspect and edit tenant resources.",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: opts.init,
	}

	server := os.Getenv("ASSETCTL_SERVER")
	if server == "" {
		server = defaultServer
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL ($ASSETCTL_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.sessionPath, "session", "", "Session file (default $ASSETCTL_SESSION or ~/.assetctl/session.yaml)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newResourcesCmd(),
		newListCmd(opts),
		newGetCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return cmd
}

func (o *rootOptions) init(_ *cobra.Command, _ []string) error {
	path := o.sessionPath
	if path == "" {
		var err error
		if path, err = client.DefaultSessionPath(); err != nil {
			return err
		}
	}
	session, err := client.LoadSession(path)
	if err != nil {
		return err
	}
	o.client = client.New(o.server, &http.Client{Timeout: o.timeout}, session)
	return nil
}

// requireSession fails early when no one is signed in
func (o *rootOptions) requireSession() error {
	if !o.client.Session().Authenticated() {
		return errNotSignedIn
	}
	return nil
}
