package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciscoucs/ucscgo/pkg/admin/ldap"
	"github.com/ciscoucs/ucscgo/pkg/cliutil"
)

func init() {
	var flags struct {
		Descr string
		Props []string
	}
	cmd := &cobra.Command{
		Use:   "create [flags] GROUP_DN",
		Short: "Create an LDAP group map",

		Long: "Create a group map: the binding from an LDAP group (named by the DN " +
			"the provider reports) to the roles and locales its members get.",

		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
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
			m, err := ldap.GroupMapCreate(ctx, h, args[0], flags.Descr, extra)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	cmd.Flags().StringArrayVar(&flags.Props, "prop", nil,
		"Additional `KEY=VALUE` property to set (repeatable)")
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "get GROUP_DN",
		Short: "Show an LDAP group map",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.GroupMapGet(ctx, h, args[0])
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("LDAP group map %q does not exist", args[0])
			}
			return printMOs(cmd, m)
		},
	}
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List LDAP group maps",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			mos, err := ldap.GroupMapList(ctx, h)
			if err != nil {
				return err
			}
			return printMOs(cmd, mos...)
		},
	}
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "delete GROUP_DN",
		Short: "Delete an LDAP group map",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return ldap.GroupMapDelete(ctx, h, args[0])
		},
	}
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	var flags struct {
		Descr string
	}
	cmd := &cobra.Command{
		Use:   "role-add GROUP_DN ROLE",
		Short: "Grant a role to the group map's members",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.GroupMapRoleAdd(ctx, h, args[0], args[1], flags.Descr, nil)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "role-remove GROUP_DN ROLE",
		Short: "Revoke a role from the group map's members",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return ldap.GroupMapRoleRemove(ctx, h, args[0], args[1])
		},
	}
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	var flags struct {
		Descr string
	}
	cmd := &cobra.Command{
		Use:   "locale-add GROUP_DN LOCALE",
		Short: "Scope the group map's members to a locale",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.GroupMapLocaleAdd(ctx, h, args[0], args[1], flags.Descr, nil)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	argparserLdapGroupMap.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "locale-remove GROUP_DN LOCALE",
		Short: "Drop a locale reference from the group map",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return ldap.GroupMapLocaleRemove(ctx, h, args[0], args[1])
		},
	}
	argparserLdapGroupMap.AddCommand(cmd)
}
