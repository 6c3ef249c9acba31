package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciscoucs/ucscgo/pkg/admin/locale"
	"github.com/ciscoucs/ucscgo/pkg/cliutil"
)

var argparserLocale = &cobra.Command{
	Use:   "locale {[flags]|SUBCOMMAND...}",
	Short: "Manage locales (organization scopes)",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserLocale)
}

func init() {
	var flags struct {
		Descr string
		Props []string
	}
	cmd := &cobra.Command{
		Use:   "create [flags] NAME",
		Short: "Create a locale",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			extra, err := parseProps(flags.Props)
			if err != nil {
				return err
			}
			m, err := locale.Create(ctx, h, args[0], flags.Descr, extra)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	cmd.Flags().StringArrayVar(&flags.Props, "prop", nil,
		"Additional `KEY=VALUE` property to set (repeatable)")
	argparserLocale.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Show a locale",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := locale.Get(ctx, h, args[0])
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("locale %q does not exist", args[0])
			}
			return printMOs(cmd, m)
		},
	}
	argparserLocale.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a locale",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return locale.Delete(ctx, h, args[0])
		},
	}
	argparserLocale.AddCommand(cmd)
}

func init() {
	var flags struct {
		Descr string
	}
	cmd := &cobra.Command{
		Use:   "assign-org LOCALE REF_NAME ORG_DN",
		Short: "Scope a locale to an organization",

		Long: "Add an organization reference to the locale.  REF_NAME names the " +
			"reference; ORG_DN is the organization being granted, e.g. " +
			"\"org-root/org-prod\".",

		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := locale.OrgAssign(ctx, h, args[0], args[1], args[2], flags.Descr)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	argparserLocale.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "unassign-org LOCALE REF_NAME",
		Short: "Remove an organization reference from a locale",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return locale.OrgUnassign(ctx, h, args[0], args[1])
		},
	}
	argparserLocale.AddCommand(cmd)
}
