package main

import (
	"fmt"
	"os"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/intstr"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/ciscoucs/ucscgo/pkg/admin/ldap"
	"github.com/ciscoucs/ucscgo/pkg/cliutil"
	"github.com/ciscoucs/ucscgo/pkg/mo"
)

func init() {
	var flags struct {
		Order     string
		RootDN    string
		BaseDN    string
		Port      int
		SSL       bool
		Filter    string
		Attribute string
		Key       string
		Timeout   int
		Vendor    string
		Retries   int
		Descr     string
		Props     []string
	}
	cmd := &cobra.Command{
		Use:   "create [flags] NAME",
		Short: "Create (or update) an LDAP provider",
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
			p := ldap.Provider{
				Name:      args[0],
				RootDN:    flags.RootDN,
				BaseDN:    flags.BaseDN,
				Port:      flags.Port,
				EnableSSL: flags.SSL,
				Filter:    flags.Filter,
				Attribute: flags.Attribute,
				Key:       flags.Key,
				Timeout:   flags.Timeout,
				Vendor:    flags.Vendor,
				Retries:   flags.Retries,
				Descr:     flags.Descr,
				Extra:     extra,
			}
			if flags.Order != "" {
				p.Order = intstr.FromString(flags.Order)
			}
			m, err := ldap.ProviderCreate(ctx, h, p)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Order, "order", "", "Provider order: 0-16 or \"lowest-available\"")
	cmd.Flags().StringVar(&flags.RootDN, "rootdn", "", "Bind DN for the LDAP connection")
	cmd.Flags().StringVar(&flags.BaseDN, "basedn", "", "Base DN for user lookups")
	cmd.Flags().IntVar(&flags.Port, "port", 0, "LDAP port (default 389)")
	cmd.Flags().BoolVar(&flags.SSL, "ssl", false, "Use SSL for the LDAP connection")
	cmd.Flags().StringVar(&flags.Filter, "filter", "", "LDAP search filter")
	cmd.Flags().StringVar(&flags.Attribute, "attribute", "", "Attribute holding the user's roles and locales")
	cmd.Flags().StringVar(&flags.Key, "key", "", "Password for the bind DN")
	cmd.Flags().IntVar(&flags.Timeout, "timeout", 0, "LDAP request timeout in seconds (default 30)")
	cmd.Flags().StringVar(&flags.Vendor, "vendor", "", "LDAP server flavor: OpenLdap or MS-AD (default OpenLdap)")
	cmd.Flags().IntVar(&flags.Retries, "retries", 0, "LDAP request retries (default 1)")
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	cmd.Flags().StringArrayVar(&flags.Props, "prop", nil,
		"Additional `KEY=VALUE` property to set (repeatable)")
	argparserLdapProvider.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Show an LDAP provider",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.ProviderGet(ctx, h, args[0])
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("LDAP provider %q does not exist", args[0])
			}
			return printMOs(cmd, m)
		},
	}
	argparserLdapProvider.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List LDAP providers",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			mos, err := ldap.ProviderList(ctx, h)
			if err != nil {
				return err
			}
			return printMOs(cmd, mos...)
		},
	}
	argparserLdapProvider.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "modify NAME KEY=VALUE...",
		Short: "Modify properties of an LDAP provider",
		Args:  cliutil.WrapPositionalArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			props, err := parseProps(args[1:])
			if err != nil {
				return err
			}
			m, err := ldap.ProviderModify(ctx, h, args[0], props)
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	argparserLdapProvider.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete an LDAP provider",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			return ldap.ProviderDelete(ctx, h, args[0])
		},
	}
	argparserLdapProvider.AddCommand(cmd)
}

func init() {
	cmd := &cobra.Command{
		Use:   "edit NAME",
		Short: "Edit an LDAP provider's properties in $EDITOR",

		Long: "Fetch the provider's properties, open them in $EDITOR as YAML, and " +
			"apply whatever was changed.  Properties removed from the buffer are " +
			"left untouched, not unset.",

		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.ProviderGet(ctx, h, name)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("LDAP provider %q does not exist", name)
			}

			before, err := sigsyaml.Marshal(m.Props)
			if err != nil {
				return err
			}
			tmpfile, err := os.CreateTemp("", "ucscctl-edit-*.yml")
			if err != nil {
				return err
			}
			defer os.Remove(tmpfile.Name())
			if _, err := tmpfile.Write(before); err != nil {
				return err
			}
			if err := tmpfile.Close(); err != nil {
				return err
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "vi"
			}
			ed := dexec.CommandContext(ctx, editor, tmpfile.Name())
			ed.Stdin = os.Stdin
			ed.Stdout = os.Stdout
			ed.Stderr = os.Stderr
			if err := ed.Run(); err != nil {
				return err
			}

			after, err := os.ReadFile(tmpfile.Name())
			if err != nil {
				return err
			}
			var edited mo.Props
			if err := sigsyaml.Unmarshal(after, &edited); err != nil {
				return fmt.Errorf("edited YAML: %w", err)
			}

			changed := make(mo.Props)
			for k, v := range edited {
				if m.Prop(k) != v {
					changed[k] = v
				}
			}
			if len(changed) == 0 {
				dlog.Infof(ctx, "no changes")
				return nil
			}
			got, err := ldap.ProviderModify(ctx, h, name, changed)
			if err != nil {
				return err
			}
			return printMOs(cmd, got)
		},
	}
	argparserLdapProvider.AddCommand(cmd)
}

func init() {
	var flags struct {
		Authorization string
		Traversal     string
		TargetAttr    string
		Name          string
		Descr         string
	}
	cmd := &cobra.Command{
		Use:   "group-rules PROVIDER_NAME",
		Short: "Configure group rules of an LDAP provider",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := resumeHandle()
			if err != nil {
				return err
			}
			m, err := ldap.ProviderGroupRulesConfigure(ctx, h, args[0], ldap.GroupRule{
				Authorization: flags.Authorization,
				Traversal:     flags.Traversal,
				TargetAttr:    flags.TargetAttr,
				Name:          flags.Name,
				Descr:         flags.Descr,
			})
			if err != nil {
				return err
			}
			return printMOs(cmd, m)
		},
	}
	cmd.Flags().StringVar(&flags.Authorization, "authorization", "", "Group authorization: enable or disable")
	cmd.Flags().StringVar(&flags.Traversal, "traversal", "", "Group traversal: recursive or non-recursive")
	cmd.Flags().StringVar(&flags.TargetAttr, "target-attr", "", "Attribute to match groups against")
	cmd.Flags().StringVar(&flags.Name, "name", "", "Rule name")
	cmd.Flags().StringVar(&flags.Descr, "descr", "", "Description")
	argparserLdapProvider.AddCommand(cmd)
}
