// Package ldap manages the LDAP authentication configuration of a UCS
// Central instance: providers (the LDAP servers themselves), provider
// groups, and group maps that grant roles and locales to members of LDAP
// groups.
//
// Everything lives under the default device profile's "ldap-ext" subtree.
// Operations that create children return a ucsc.OperationError when the
// required parent object is missing, rather than relying on the endpoint's
// less specific error.
package ldap

import (
	"context"
	"fmt"
	"strconv"

	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/ciscoucs/ucscgo/pkg/admin"
	"github.com/ciscoucs/ucscgo/pkg/mo"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
)

// ExtDN returns the DN of the LDAP configuration container.
func ExtDN() string {
	return admin.BaseDN() + "/ldap-ext"
}

// ProviderDN returns the DN of the named LDAP provider.
func ProviderDN(name string) string {
	return ExtDN() + "/provider-" + name
}

// OrderLowestAvailable asks the endpoint to pick the next free slot in the
// provider ordering.
var OrderLowestAvailable = intstr.FromString("lowest-available")

// orderString renders an order field.  The zero value means
// "lowest-available"; pin an explicit order 0 with intstr.FromString("0").
func orderString(order intstr.IntOrString) string {
	if order == (intstr.IntOrString{}) {
		return OrderLowestAvailable.StrVal
	}
	return order.String()
}

// validateOrder enforces the endpoint's contract for ordering fields:
// "lowest-available" or an integer 0..16.
func validateOrder(op string, order intstr.IntOrString) error {
	str := orderString(order)
	if str == OrderLowestAvailable.StrVal {
		return nil
	}
	n, err := strconv.Atoi(str)
	if err != nil || n < 0 || n > 16 {
		return &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("order must be %q or 0-16, not %q", OrderLowestAvailable.StrVal, str)}
	}
	return nil
}

// Provider describes an LDAP server to authenticate against.  Zero values
// take the endpoint's defaults: port 389, timeout 30s, 1 retry, vendor
// OpenLdap, SSL off, lowest-available order.
type Provider struct {
	Name      string
	Order     intstr.IntOrString
	RootDN    string
	BaseDN    string
	Port      int
	EnableSSL bool
	Filter    string
	Attribute string
	Key       string
	Timeout   int
	Vendor    string
	Retries   int
	Descr     string

	// Extra carries properties this client doesn't model, for forward
	// compatibility with newer endpoint versions.
	Extra mo.Props
}

func (p Provider) props() mo.Props {
	port := p.Port
	if port == 0 {
		port = 389
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = 30
	}
	retries := p.Retries
	if retries == 0 {
		retries = 1
	}
	vendor := p.Vendor
	if vendor == "" {
		vendor = "OpenLdap"
	}
	return mo.Props{
		"name":      p.Name,
		"order":     orderString(p.Order),
		"rootdn":    p.RootDN,
		"basedn":    p.BaseDN,
		"port":      strconv.Itoa(port),
		"enableSSL": mo.BoolString(p.EnableSSL),
		"filter":    p.Filter,
		"attribute": p.Attribute,
		"key":       p.Key,
		"timeout":   strconv.Itoa(timeout),
		"vendor":    vendor,
		"retries":   strconv.Itoa(retries),
		"descr":     p.Descr,
	}
}

// ProviderCreate creates an LDAP provider (updating it in place when one of
// the same name already exists).  The ldap-ext container must exist.
func ProviderCreate(ctx context.Context, h *ucsc.Handle, p Provider) (*mo.MO, error) {
	const op = "ldap.ProviderCreate"
	if err := validateOrder(op, p.Order); err != nil {
		return nil, err
	}
	parent, err := h.QueryDN(ctx, ExtDN())
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, &ucsc.OperationError{Op: op,
			Reason: fmt.Sprintf("LDAP container %q does not exist", ExtDN())}
	}

	m, err := mo.New("aaaLdapProvider", parent.DN, p.props())
	if err != nil {
		return nil, err
	}
	m.Set(p.Extra)
	h.AddMO(m, true)
	return commitOne(ctx, h, m)
}

// ProviderGet returns the named provider, or nil when it doesn't exist.
func ProviderGet(ctx context.Context, h *ucsc.Handle, name string) (*mo.MO, error) {
	return h.QueryDN(ctx, ProviderDN(name))
}

// ProviderList returns every configured LDAP provider.
func ProviderList(ctx context.Context, h *ucsc.Handle) ([]*mo.MO, error) {
	return h.QueryChildren(ctx, ExtDN(), "aaaLdapProvider")
}

// ProviderExists reports whether the named provider exists with the given
// properties (nil props checks bare existence).
func ProviderExists(ctx context.Context, h *ucsc.Handle, name string, props mo.Props) (bool, *mo.MO, error) {
	m, err := ProviderGet(ctx, h, name)
	if err != nil || m == nil {
		return false, nil, err
	}
	if !m.Match(props) {
		return false, nil, nil
	}
	return true, m, nil
}

// ProviderModify updates properties of an existing provider.
func ProviderModify(ctx context.Context, h *ucsc.Handle, name string, props mo.Props) (*mo.MO, error) {
	m, err := ProviderGet(ctx, h, name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &ucsc.OperationError{Op: "ldap.ProviderModify",
			Reason: fmt.Sprintf("LDAP provider %q does not exist", name)}
	}
	m.Set(props)
	h.SetMO(m)
	return commitOne(ctx, h, m)
}

// ProviderDelete removes the named provider.
func ProviderDelete(ctx context.Context, h *ucsc.Handle, name string) error {
	m, err := ProviderGet(ctx, h, name)
	if err != nil {
		return err
	}
	if m == nil {
		return &ucsc.OperationError{Op: "ldap.ProviderDelete",
			Reason: fmt.Sprintf("LDAP provider %q does not exist", name)}
	}
	h.RemoveMO(m)
	_, err = h.Commit(ctx)
	return err
}

// GroupRule controls how group membership is resolved when authenticating
// through a provider.
type GroupRule struct {
	Authorization string // "enable" or "disable"
	Traversal     string // "recursive" or "non-recursive"
	TargetAttr    string
	Name          string
	Descr         string
	Extra         mo.Props
}

// ProviderGroupRulesConfigure sets the group rule of an existing provider.
func ProviderGroupRulesConfigure(ctx context.Context, h *ucsc.Handle, providerName string, rule GroupRule) (*mo.MO, error) {
	parent, err := ProviderGet(ctx, h, providerName)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, &ucsc.OperationError{Op: "ldap.ProviderGroupRulesConfigure",
			Reason: fmt.Sprintf("LDAP provider %q does not exist", providerName)}
	}

	m, err := mo.New("aaaLdapGroupRule", parent.DN, nil)
	if err != nil {
		return nil, err
	}
	m.Set(mo.Props{
		"authorization": rule.Authorization,
		"traversal":     rule.Traversal,
		"targetAttr":    rule.TargetAttr,
		"name":          rule.Name,
		"descr":         rule.Descr,
	})
	m.Set(rule.Extra)
	h.AddMO(m, true)
	return commitOne(ctx, h, m)
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
