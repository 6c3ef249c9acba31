package mo

import (
	"fmt"
	"strings"
)

// Meta describes the naming contract of an MO class: how the relative name
// is built from the object's properties.  Only the classes this SDK's
// operation layers touch are registered; the generic MO codec does not need
// a Meta to round-trip objects it receives from the endpoint.
type Meta struct {
	ClassID string

	// RNFormat is the relative-name pattern, with one "%s" per naming
	// property, e.g. "provider-%s".  A pattern with no verbs names a
	// singleton child, e.g. "ldapgrouprule".
	RNFormat string

	// NamingProps are the property names substituted in to RNFormat, in
	// order.
	NamingProps []string
}

// RN computes the relative name for an object with the given properties.
func (meta Meta) RN(props Props) (string, error) {
	args := make([]interface{}, 0, len(meta.NamingProps))
	for _, name := range meta.NamingProps {
		val := props[name]
		if val == "" {
			return "", fmt.Errorf("mo: class %s: missing naming property %q",
				meta.ClassID, name)
		}
		if strings.Contains(val, "/") {
			return "", fmt.Errorf("mo: class %s: naming property %q contains %q: %q",
				meta.ClassID, name, "/", val)
		}
		args = append(args, val)
	}
	return fmt.Sprintf(meta.RNFormat, args...), nil
}

var metaRegistry = map[string]Meta{}

func register(meta Meta) {
	metaRegistry[meta.ClassID] = meta
}

// LookupMeta returns the Meta registered for a class ID.
func LookupMeta(classID string) (Meta, bool) {
	meta, ok := metaRegistry[classID]
	return meta, ok
}

func init() {
	// Organizational containers.
	register(Meta{ClassID: "orgOrg", RNFormat: "org-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "orgDeviceProfile", RNFormat: "deviceprofile-%s", NamingProps: []string{"name"}})

	// AAA: LDAP.
	register(Meta{ClassID: "aaaLdapEp", RNFormat: "ldap-ext"})
	register(Meta{ClassID: "aaaLdapProvider", RNFormat: "provider-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "aaaLdapGroupRule", RNFormat: "ldapgrouprule"})
	register(Meta{ClassID: "aaaLdapGroup", RNFormat: "ldapgroup-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "aaaProviderGroup", RNFormat: "providergroup-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "aaaProviderRef", RNFormat: "provider-ref-%s", NamingProps: []string{"name"}})

	// AAA: locales and the references hung off LDAP group maps.
	register(Meta{ClassID: "aaaLocale", RNFormat: "locale-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "aaaUserRole", RNFormat: "role-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "aaaUserLocale", RNFormat: "locale-%s", NamingProps: []string{"name"}})
	register(Meta{ClassID: "aaaOrg", RNFormat: "org-%s", NamingProps: []string{"name"}})
}
