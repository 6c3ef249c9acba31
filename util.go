package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/ciscoucs/ucscgo/pkg/mo"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
)

// endpointFlags is the flag set every command that talks to UCS Central
// shares.
type endpointFlags struct {
	ConfigFile string
	Endpoint   string
	Username   string
	Insecure   bool
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ConfigFile, "config", "",
		"Read endpoint settings from `FILE` (YAML: endpoint, username, insecure, ...)")
	cmd.Flags().StringVar(&f.Endpoint, "endpoint", "",
		"Base `URL` of the UCS Central instance (overrides the config file)")
	cmd.Flags().StringVar(&f.Username, "username", "",
		"User to authenticate as (overrides the config file)")
	cmd.Flags().BoolVar(&f.Insecure, "insecure", false,
		"Skip TLS certificate verification")
}

// config assembles a ucsc.Config from the config file (if any) and flags.
func (f *endpointFlags) config() (ucsc.Config, error) {
	var cfg ucsc.Config
	if f.ConfigFile != "" {
		var err error
		cfg, err = ucsc.LoadConfig(f.ConfigFile)
		if err != nil {
			return cfg, err
		}
	}
	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.Username != "" {
		cfg.Username = f.Username
	}
	if f.Insecure {
		cfg.Insecure = true
	}
	return cfg, nil
}

// sessionState is what `ucscctl login` leaves behind so that follow-on
// commands can reuse the session instead of logging in every time.
type sessionState struct {
	Endpoint string `json:"endpoint"`
	Username string `json:"username"`
	Insecure bool   `json:"insecure,omitempty"`
	Cookie   string `json:"cookie"`
}

func statePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ucscctl", "session.yml"), nil
}

func saveState(state sessionState) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	bs, err := sigsyaml.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0o600)
}

func loadState() (sessionState, error) {
	var state sessionState
	path, err := statePath()
	if err != nil {
		return state, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return state, err
	}
	if err := sigsyaml.Unmarshal(bs, &state); err != nil {
		return state, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

func clearState() error {
	path, err := statePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resumeHandle builds a handle from the saved session.  The handle carries
// no password; if the session has expired the user has to `ucscctl login`
// again.
func resumeHandle() (*ucsc.Handle, error) {
	state, err := loadState()
	if err != nil {
		return nil, fmt.Errorf("no active session (run 'ucscctl login'): %w", err)
	}
	h, err := ucsc.NewHandle(ucsc.Config{
		Endpoint: state.Endpoint,
		Username: state.Username,
		Insecure: state.Insecure,
	})
	if err != nil {
		return nil, err
	}
	h.ResumeSession(state.Cookie)
	return h, nil
}

// parseProps turns KEY=VALUE arguments in to an mo.Props.  Empty values are
// rejected: the SDK drops them rather than sending them, so "descr=" would
// silently do nothing instead of clearing the property.
func parseProps(args []string) (mo.Props, error) {
	props := make(mo.Props, len(args))
	for _, arg := range args {
		key, val, ok := cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q (expected KEY=VALUE)", arg)
		}
		if val == "" {
			return nil, fmt.Errorf("property %q has an empty value; properties cannot be cleared, only overwritten", key)
		}
		props[key] = val
	}
	return props, nil
}

func cut(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// moDoc is the YAML rendering of an MO for command output.
type moDoc struct {
	ClassID string        `yaml:"classId"`
	DN      string        `yaml:"dn"`
	Props   yaml.MapSlice `yaml:"props,omitempty"`
}

func moToDoc(m *mo.MO) moDoc {
	doc := moDoc{
		ClassID: m.ClassID,
		DN:      m.DN,
	}
	keys := make([]string, 0, len(m.Props))
	for k := range m.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc.Props = append(doc.Props, yaml.MapItem{Key: k, Value: m.Props[k]})
	}
	return doc
}

// printMOs writes the MOs to the command's stdout as a YAML list.
func printMOs(cmd *cobra.Command, mos ...*mo.MO) error {
	docs := make([]moDoc, 0, len(mos))
	for _, m := range mos {
		docs = append(docs, moToDoc(m))
	}
	bs, err := yaml.Marshal(docs)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(bs)
	return err
}
