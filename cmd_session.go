package main

import (
	"fmt"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ciscoucs/ucscgo/pkg/cliutil"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
)

func init() {
	var flags endpointFlags
	cmd := &cobra.Command{
		Use:   "login [flags]",
		Short: "Log in to UCS Central and save the session",

		Long: "Authenticate against the UCS Central XML API and save the session " +
			"cookie, so that other ucscctl commands can reuse it." +
			"\n\n" +
			"The password is taken from the UCSC_PASSWORD environment variable if " +
			"set, from the config file's password field otherwise, and prompted " +
			"for interactively as a last resort.",

		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			if pw := os.Getenv("UCSC_PASSWORD"); pw != "" {
				cfg.Password = pw
			}
			if cfg.Password == "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s@%s: ", cfg.Username, cfg.Endpoint)
				pw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				cfg.Password = string(pw)
			}

			h, err := ucsc.NewHandle(cfg)
			if err != nil {
				return err
			}
			if err := h.Login(ctx); err != nil {
				return err
			}
			dlog.Debugf(ctx, "session refresh period is %v", h.RefreshPeriod())

			if err := saveState(sessionState{
				Endpoint: cfg.Endpoint,
				Username: cfg.Username,
				Insecure: cfg.Insecure,
				Cookie:   h.Cookie(),
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", cfg.Endpoint, cfg.Username)
			return nil
		},
	}
	flags.register(cmd)
	argparser.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the saved session",

		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				// Nothing to log out of; still drop the state file.
				return clearState()
			}
			if err := h.Logout(ctx); err != nil {
				dlog.Warnf(ctx, "logout: %v", err)
			}
			return clearState()
		},
	}
	argparser.AddCommand(cmd)
}
