// Package locale manages aaaLocale objects: named bundles of organization
// references that scope what a user (or an LDAP group mapping) may touch.
package locale

import (
	"context"
	"fmt"

	"github.com/ciscoucs/ucscgo/pkg/admin"
	"github.com/ciscoucs/ucscgo/pkg/mo"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
)

// DN returns the DN of the named locale.
func DN(name string) string {
	return admin.BaseDN() + "/locale-" + name
}

// Create creates a locale.  An existing locale of the same name is updated
// in place.
func Create(ctx context.Context, h *ucsc.Handle, name, descr string, extra mo.Props) (*mo.MO, error) {
	m, err := mo.New("aaaLocale", admin.BaseDN(), mo.Props{
		"name":  name,
		"descr": descr,
	})
	if err != nil {
		return nil, err
	}
	m.Set(extra)
	h.AddMO(m, true)
	return commitOne(ctx, h, m)
}

// Get returns the named locale, or nil when it doesn't exist.
func Get(ctx context.Context, h *ucsc.Handle, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, DN(name))
}

// Exists reports whether the named locale exists with the given properties
// (nil props checks bare existence).  On a match the MO is returned too.
func Exists(ctx context.Context, h *ucsc.Handle, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := Get(ctx, h, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// Delete removes the named locale.
func Delete(ctx context.Context, h *ucsc.Handle, name string) error {
	m, err := Get(ctx, h, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "locale.Delete", Reason: fmt.Sprintf("locale %q does not exist", name)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}

// OrgAssign scopes the locale to an organization by adding an aaaOrg
// reference under it.  refName names the reference; orgDN is the
// organization being granted, e.g. "org-root/org-prod".
func OrgAssign(ctx context.Context, h *ucsc.Handle, localeName, refName, orgDN, descr string) (*mo.MO, error) {
	parent, err := Get(ctx, h, localeName)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, &ucsc.OperationError{Op: "locale.OrgAssign",
			Reason: fmt.Sprintf("locale %q does not exist", localeName)}
	}
	m, err := mo.New("aaaOrg", parent.DN, mo.Props{
		"name":  refName,
		"refDn": orgDN,
		"descr": descr,
	})
	if err != nil {
		return nil, err
	}
	h.AddMO(m, true)
	return commitOne(ctx, h, m)
}

// OrgUnassign removes an organization reference from the locale.
func OrgUnassign(ctx context.Context, h *ucsc.Handle, localeName, refName string) error {
	dn := DN(localeName) + "/org-" + refName
	m, err := h.QueryDN(ctx, dn)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "locale.OrgUnassign",
			Reason: fmt.Sprintf("org reference %q does not exist", dn)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}

// commitOne commits the staged change and returns the endpoint's copy of m,
// falling back to the staged object when the response doesn't echo it.
func commitOne(ctx context.Context, h *ucsc.Handle, m *mo.MO) (*mo.MO, error) {
	out, err := h.Commit(ctx)
	if err != nil {
		return nil, err
	}
	for _, got := range out {
		if got.DN == m.DN {
			return got, nil
		}
	}
	return m, nil
}
