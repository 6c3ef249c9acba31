package cliutil

import (
	"github.com/spf13/cobra"
)

// The template functions HelpTemplate relies on.  Registration is global in
// cobra, so this happens once at import time.
func init() {
	cobra.AddTemplateFunc("getTerminalWidth", GetTerminalWidth)
	cobra.AddTemplateFunc("wrap", Wrap)
	cobra.AddTemplateFunc("wrapIndent", WrapIndent)
	cobra.AddTemplateFunc("add", sum)
}

func sum(args ...int) int {
	ret := 0
	for _, arg := range args {
		ret += arg
	}
	return ret
}

// HelpTemplate is a replacement for cobra's default help template that
// word-wraps the long help text and the per-command one-liners to the
// terminal width; install it with (*cobra.Command).SetHelpTemplate on the
// root command.
const HelpTemplate = `Usage: {{ .UseLine }}

{{- /* short help */}}
{{- if .Short }}
{{ .Short }}
{{- end }}

{{- /* long help, wrapped to the terminal */}}
{{- if .Long }}

{{ .Long | wrap getTerminalWidth | trimTrailingWhitespaces }}
{{- end }}

{{- /* aliases */}}
{{- if .Aliases }}

Aliases:
  {{ .NameAndAliases }}
{{- end }}

{{- /* examples */}}
{{- if .HasExample }}

Examples:
{{ .Example }}
{{- end }}

{{- /* subcommands; the +5 matches the 3-space gutter plus wrap's slop */}}
{{- if .HasAvailableSubCommands }}

Available Commands:
{{- range .Commands}}
  {{- if (or .IsAvailableCommand (eq .Name "help")) }}
    {{- "\n" }}  {{ rpad .Name .NamePadding }}   {{ .Short | wrapIndent (add .NamePadding 5) getTerminalWidth }}
  {{- end }}
{{- end }}
{{- end }}

{{- /* flags of this command */}}
{{- if .HasAvailableLocalFlags }}

Flags:
{{ getTerminalWidth | .LocalFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- /* flags inherited from parent commands */}}
{{- if .HasAvailableInheritedFlags }}

Global Flags:
{{ getTerminalWidth | .InheritedFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- /* bare help topics */}}
{{- if .HasHelpSubCommands }}

Additional help topics:
{{- range .Commands }}
  {{- if .IsAdditionalHelpTopicCommand }}
    {{- "\n" }}  {{ rpad .CommandPath .CommandPathPadding }}   {{ .Short | wrapIndent (add .NamePadding 5) getTerminalWidth }}
  {{- end }}
{{- end }}
{{- end }}

{{- /* footer */}}
{{- if .HasAvailableSubCommands }}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end}}
`
