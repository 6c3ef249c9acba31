package ldap

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/ciscoucs/ucscgo/pkg/mo"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
)

// ProviderGroupDN returns the DN of the named provider group.
func ProviderGroupDN(name string) string {
	return ExtDN() + "/providergroup-" + name
}

func providerRefDN(groupName, name string) string {
	return ProviderGroupDN(groupName) + "/provider-ref-" + name
}

// ProviderGroupCreate creates a provider group: an ordered set of providers
// that authentication domains can point at.
func ProviderGroupCreate(ctx context.Context, h *ucsc.Handle, name, descr string, extra mo.Props) (*mo.MO, error) {
	m, err := mo.New("aaaProviderGroup", ExtDN(), mo.Props{
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

// ProviderGroupGet returns the named provider group, or nil when it doesn't
// exist.
func ProviderGroupGet(ctx context.Context, h *ucsc.Handle, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, ProviderGroupDN(name))
}

// ProviderGroupList returns every configured provider group.
func ProviderGroupList(ctx context.Context, h *ucsc.Handle) ([]*mo.MO, error) {
	return h.QueryChildren(ctx, ExtDN(), "aaaProviderGroup")
}

// ProviderGroupExists reports whether the named provider group exists with
// the given properties.
func ProviderGroupExists(ctx context.Context, h *ucsc.Handle, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := ProviderGroupGet(ctx, h, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// ProviderGroupDelete removes the named provider group.
func ProviderGroupDelete(ctx context.Context, h *ucsc.Handle, name string) error {
	m, err := ProviderGroupGet(ctx, h, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "ldap.ProviderGroupDelete",
			Reason: fmt.Sprintf("LDAP provider group %q does not exist", name)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}

// ProviderGroupProviderAdd puts an existing provider in to a provider group
// at the given order.  Both the group and the provider must exist.
func ProviderGroupProviderAdd(ctx context.Context, h *ucsc.Handle, groupName, name string, order intstr.IntOrString, descr string, extra mo.Props) (*mo.MO, error) {
	const op = "ldap.ProviderGroupProviderAdd"
	if err := validateOrder(op, order); err != nil {
		return nil, err
	}
	group, err := ProviderGroupGet(ctx, h, groupName)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("LDAP provider group %q does not exist", groupName)}
	}
	provider, err := ProviderGet(ctx, h, name)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("LDAP provider %q does not exist", name)}
	}

	m, err := mo.New("aaaProviderRef", group.DN, mo.Props{
		"name":  name,
		"order": orderString(order),
		"descr": descr,
	})
	if err != nil {
		return nil, err
	}
	m.Set(extra)
	h.AddMO(m, true)
	return commitOne(ctx, h, m)
}

// ProviderGroupProviderGet returns the group's reference to the named
// provider, or nil.
func ProviderGroupProviderGet(ctx context.Context, h *ucsc.Handle, groupName, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, providerRefDN(groupName, name))
}

// ProviderGroupProviderExists reports whether the group references the named
// provider.
func ProviderGroupProviderExists(ctx context.Context, h *ucsc.Handle, groupName, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := ProviderGroupProviderGet(ctx, h, groupName, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// ProviderGroupProviderModify updates a provider reference, typically its
// order.
func ProviderGroupProviderModify(ctx context.Context, h *ucsc.Handle, groupName, name string, props mo.Props) (*mo.MO, error) {
	m, err := ProviderGroupProviderGet(ctx, h, groupName, name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &ucsc.OperationError{Op: "ldap.ProviderGroupProviderModify",
			Reason: fmt.Sprintf("provider %q is not in LDAP provider group %q", name, groupName)}
	}
	m.Set(props)
	h.SetMO(m)
	return commitOne(ctx, h, m)
}

// ProviderGroupProviderRemove takes a provider out of a provider group.
func ProviderGroupProviderRemove(ctx context.Context, h *ucsc.Handle, groupName, name string) error {
	m, err := ProviderGroupProviderGet(ctx, h, groupName, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "ldap.ProviderGroupProviderRemove",
			Reason: fmt.Sprintf("provider %q is not in LDAP provider group %q", name, groupName)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}
