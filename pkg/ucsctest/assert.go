package ucsctest

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// DumpMO renders an MO (and its children) in a stable, diffable form.
func DumpMO(m *mo.MO) string {
	return spewConfig.Sdump(m)
}

// AssertEqualMOs fails the test with a unified diff when the two MO trees
// differ.
func AssertEqualMOs(t *testing.T, exp, act *mo.MO) bool {
	t.Helper()
	expStr := DumpMO(exp)
	actStr := DumpMO(act)
	if expStr == actStr {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expStr),
		B:        difflib.SplitLines(actStr),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  2,
	})
	t.Errorf("MO diff:\n%s", diff)
	return false
}

// AssertHasProps fails the test when the MO is missing any of the given
// properties.
func AssertHasProps(t *testing.T, m *mo.MO, props mo.Props) bool {
	t.Helper()
	if m == nil {
		t.Error("MO is nil")
		return false
	}
	ok := true
	var missing []string
	for k, want := range props {
		if got := m.Prop(k); got != want {
			missing = append(missing, k+"="+got+" (want "+want+")")
			ok = false
		}
	}
	if !ok {
		t.Errorf("MO %s property mismatch: %s", m, strings.Join(missing, ", "))
	}
	return ok
}
