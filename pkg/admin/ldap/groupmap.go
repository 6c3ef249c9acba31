package ldap

import (
	"context"
	"fmt"

	"github.com/ciscoucs/ucscgo/pkg/admin/locale"
	"github.com/ciscoucs/ucscgo/pkg/mo"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
)

// GroupMapDN returns the DN of the named LDAP group map.
func GroupMapDN(name string) string {
	return ExtDN() + "/ldapgroup-" + name
}

// GroupMapCreate creates a group map: the binding from an LDAP group DN to
// the roles and locales its members get.  name is the LDAP group's DN as the
// provider reports it.
func GroupMapCreate(ctx context.Context, h *ucsc.Handle, name, descr string, extra mo.Props) (*mo.MO, error) {
	m, err := mo.New("aaaLdapGroup", ExtDN(), mo.Props{
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

// GroupMapGet returns the named group map, or nil when it doesn't exist.
func GroupMapGet(ctx context.Context, h *ucsc.Handle, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, GroupMapDN(name))
}

// GroupMapList returns every configured group map.
func GroupMapList(ctx context.Context, h *ucsc.Handle) ([]*mo.MO, error) {
	return h.QueryChildren(ctx, ExtDN(), "aaaLdapGroup")
}

// GroupMapExists reports whether the named group map exists with the given
// properties.
func GroupMapExists(ctx context.Context, h *ucsc.Handle, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := GroupMapGet(ctx, h, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// GroupMapDelete removes the named group map (and its role/locale
// references).
func GroupMapDelete(ctx context.Context, h *ucsc.Handle, name string) error {
	m, err := GroupMapGet(ctx, h, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "ldap.GroupMapDelete",
			Reason: fmt.Sprintf("LDAP group map %q does not exist", name)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}

// GroupMapRoleAdd grants a role to members of the group map's LDAP group.
func GroupMapRoleAdd(ctx context.Context, h *ucsc.Handle, groupMapName, name, descr string, extra mo.Props) (*mo.MO, error) {
	parent, err := GroupMapGet(ctx, h, groupMapName)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, &ucsc.OperationError{Op: "ldap.GroupMapRoleAdd",
			Reason: fmt.Sprintf("LDAP group map %q does not exist", GroupMapDN(groupMapName))}
	}

	m, err := mo.New("aaaUserRole", parent.DN, mo.Props{
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

// GroupMapRoleGet returns the named role reference of a group map, or nil.
func GroupMapRoleGet(ctx context.Context, h *ucsc.Handle, groupMapName, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, GroupMapDN(groupMapName)+"/role-"+name)
}

// GroupMapRoleExists reports whether the group map grants the named role.
func GroupMapRoleExists(ctx context.Context, h *ucsc.Handle, groupMapName, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := GroupMapRoleGet(ctx, h, groupMapName, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// GroupMapRoleRemove revokes a role from the group map.
func GroupMapRoleRemove(ctx context.Context, h *ucsc.Handle, groupMapName, name string) error {
	m, err := GroupMapRoleGet(ctx, h, groupMapName, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "ldap.GroupMapRoleRemove",
			Reason: fmt.Sprintf("role %q is not granted by LDAP group map %q", name, groupMapName)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}

// GroupMapLocaleAdd scopes members of the group map's LDAP group to a
// locale.  The locale itself must already exist.
func GroupMapLocaleAdd(ctx context.Context, h *ucsc.Handle, groupMapName, name, descr string, extra mo.Props) (*mo.MO, error) {
	const op = "ldap.GroupMapLocaleAdd"
	parent, err := GroupMapGet(ctx, h, groupMapName)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("LDAP group map %q does not exist", GroupMapDN(groupMapName))}
	}

	ok, _, err := locale.Exists(ctx, h, name, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("locale %q does not exist", name)}
	}

	m, err := mo.New("aaaUserLocale", parent.DN, mo.Props{
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

// GroupMapLocaleGet returns the named locale reference of a group map, or
// nil.
func GroupMapLocaleGet(ctx context.Context, h *ucsc.Handle, groupMapName, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, GroupMapDN(groupMapName)+"/locale-"+name)
}

// GroupMapLocaleExists reports whether the group map carries the named
// locale reference.
func GroupMapLocaleExists(ctx context.Context, h *ucsc.Handle, groupMapName, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := GroupMapLocaleGet(ctx, h, groupMapName, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// GroupMapLocaleRemove drops a locale reference from the group map.  Like
// GroupMapLocaleAdd, it insists the locale itself exists; delete the locale
// last.
func GroupMapLocaleRemove(ctx context.Context, h *ucsc.Handle, groupMapName, name string) error {
	const op = "ldap.GroupMapLocaleRemove"
	ok, _, err := locale.Exists(ctx, h, name, nil)
	if err != nil {
		return err
	}
	if !ok {
		return &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("locale %q does not exist", name)}
	}

	m, err := GroupMapLocaleGet(ctx, h, groupMapName, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("locale %q is not referenced by LDAP group map %q", name, groupMapName)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}
