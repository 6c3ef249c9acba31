package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/ciscoucs/ucscgo/pkg/admin/ldap"
	"github.com/ciscoucs/ucscgo/pkg/cliutil"
)

func init() {
	var flags struct {
		Descr string
		Props []string
	}
	cmd := &cobra.Command{
		Use:   "create [flags] NAME",
		Short: "Create an LDAP provider group",
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
			m, err := ldap.ProviderGroupCreate(ctx, h, args[0], flags.Descr, extra)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	cmd.Flags().StringArrayVar(&flags.Props, "prop", nil,
		"Additional `KEY=VALUE` property to set (repeatable)")
	argparserLdapProviderGroup.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Show an LDAP provider group",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.ProviderGroupGet(ctx, h, args[0])
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("LDAP provider group %q does not exist", args[0])
			}
			return printMOs(cmd, m)
		},
	}
	argparserLdapProviderGroup.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List LDAP provider groups",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			mos, err := ldap.ProviderGroupList(ctx, h)
			if err != nil {
				return err
			}
			return printMOs(cmd, mos...)
		},
	}
	argparserLdapProviderGroup.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an LDAP provider group",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return ldap.ProviderGroupDelete(ctx, h, args[0])
		},
	}
	argparserLdapProviderGroup.AddCommand(cmd)
}

func init() {
	var flags struct {
		Order string
		Descr string
	}
	cmd := &cobra.Command{
		Use:   "provider-add GROUP PROVIDER",
		Short: "Put a provider in to a provider group",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			var order intstr.IntOrString
			if flags.Order != "" {
				order = intstr.FromString(flags.Order)
			}
			m, err := ldap.ProviderGroupProviderAdd(ctx, h, args[0], args[1], order, flags.Descr, nil)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Order, "order", "", "Provider order: 0-16 or \"lowest-available\"")
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	argparserLdapProviderGroup.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "provider-modify GROUP PROVIDER KEY=VALUE...",
		Short: "Update a provider reference, typically its order",
		Args:  cliutil.WrapPositionalArgs(cobra.MinimumNArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			props, err := parseProps(args[2:])
			if err != nil {
				return err
			}
			m, err := ldap.ProviderGroupProviderModify(ctx, h, args[0], args[1], props)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	argparserLdapProviderGroup.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "provider-remove GROUP PROVIDER",
		Short: "Take a provider out of a provider group",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return ldap.ProviderGroupProviderRemove(ctx, h, args[0], args[1])
		},
	}
	argparserLdapProviderGroup.AddCommand(cmd)
}
