package main

import (
	"github.com/spf13/cobra"

	"github.com/ciscoucs/ucscgo/pkg/cliutil"
)

var argparserLdap = &cobra.Command{
	Use:   "ldap {[flags]|SUBCOMMAND...}",
	Short: "Manage LDAP authentication configuration",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

var argparserLdapProvider = &cobra.Command{
	Use:   "provider {[flags]|SUBCOMMAND...}",
	Short: "Manage LDAP providers",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

var argparserLdapGroupMap = &cobra.Command{
	Use:   "group-map {[flags]|SUBCOMMAND...}",
	Short: "Manage LDAP group maps",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

var argparserLdapProviderGroup = &cobra.Command{
	Use:   "provider-group {[flags]|SUBCOMMAND...}",
	Short: "Manage LDAP provider groups",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparserLdap.AddCommand(argparserLdapProvider)
	argparserLdap.AddCommand(argparserLdapGroupMap)
	argparserLdap.AddCommand(argparserLdapProviderGroup)
	argparser.AddCommand(argparserLdap)
}
