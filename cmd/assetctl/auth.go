package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/assetops/backend/internal/client"
	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in, run: assetctl login")

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password, tenant string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Example: `  assetctl login --email admin@demo.test --tenant DEMO
  ASSETCTL_PASSWORD=secret assetctl login --email admin@demo.test`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("ASSETCTL_PASSWORD")
			}
			if password == "" {
				return errors.New("password is required (--password or $ASSETCTL_PASSWORD)")
			}
			result, err := opts.client.Login(cmd.Context(), strings.TrimSpace(email), password, tenant)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.FormatSuccess(fmt.Sprintf("Signed in as %s (%s)", result.Email, result.UserRole)))
			fmt.Fprintln(cmd.OutOrStdout(), client.StyleMuted.Render("Session saved to "+opts.client.Session().Path()))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant code, when the email exists in several tenants")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.client.Logout(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), client.FormatWarning("Local session cleared, but the server call failed"))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.FormatSuccess("Signed out"))
			return nil
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.requireSession(); err != nil {
				return err
			}
			me, err := opts.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			rec := map[string]any{
				"email":       me.Email,
				"tenant_code": me.TenantCode,
				"tenant_id":   me.TenantID.String(),
				"user_id":     me.UserID.String(),
				"role":        me.UserRole,
				"permissions": strings.Join(me.Permissions, ", "),
			}
			if me.ExpiresAt != nil {
				rec["expires_at"] = *me.ExpiresAt
			}
			return client.RenderRecord(cmd.OutOrStdout(), "Session", rec)
		},
	}
}
