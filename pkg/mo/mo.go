// Package mo implements the generic managed-object (MO) model used by the
// UCS Central XML API.
//
// Every piece of configuration on a UCS Central instance is an MO: a typed
// node in a tree, addressed by a distinguished name ("DN", the slash-joined
// path of relative names from the root).  The XML API represents an MO as an
// element whose name is the MO's class ID and whose attributes are the MO's
// properties.
package mo

import (
	"fmt"
	"sort"
	"strings"
)

// Props is the property bag of an MO: every XML attribute other than the
// structural "dn", "rn", and "status" attributes.
type Props map[string]string

// Status values reported (and requested) on MOs in configConfMos exchanges.
const (
	StatusCreated  = "created"
	StatusModified = "modified"
	StatusDeleted  = "deleted"
)

// MO is a single managed object.  The zero value is not usable; build MOs
// with New (for objects whose DN is computed from naming properties) or by
// decoding an XML API response.
type MO struct {
	ClassID  string
	DN       string
	RN       string
	Status   string
	Props    Props
	Children []*MO
}

// New creates an MO of the given class as a child of parentDN.  The relative
// name is computed from the class's naming properties, so those must be
// present in props; see Meta.
func New(classID, parentDN string, props Props) (*MO, error) {
	meta, ok := LookupMeta(classID)
	if !ok {
		return nil, fmt.Errorf("mo: unregistered class ID %q", classID)
	}
	rn, err := meta.RN(props)
	if err != nil {
		return nil, err
	}
	m := &MO{
		ClassID: classID,
		RN:      rn,
		DN:      parentDN + "/" + rn,
		Props:   make(Props, len(props)),
	}
	m.Set(props)
	return m, nil
}

// Set merges the given properties in to the MO, overwriting existing values.
// Property names that the current client doesn't know about are accepted
// as-is; the endpoint is the authority on which properties a class has.
// Empty values are skipped, matching how the Python SDK treats None.
func (m *MO) Set(props Props) {
	if m.Props == nil {
		m.Props = make(Props, len(props))
	}
	for k, v := range props {
		switch k {
		case "dn", "rn", "status":
			continue
		}
		if v == "" {
			continue
		}
		m.Props[k] = v
	}
}

// Match reports whether every given property is present on the MO with an
// equal value.  An empty (or nil) props always matches.
func (m *MO) Match(props Props) bool {
	for k, want := range props {
		if got, ok := m.Props[k]; !ok || got != want {
			return false
		}
	}
	return true
}

// Prop returns the named property, or "" if unset.
func (m *MO) Prop(name string) string {
	return m.Props[name]
}

// ParentDN returns the DN of the MO's parent, or "" for a root MO.
func (m *MO) ParentDN() string {
	i := strings.LastIndex(m.DN, "/")
	if i < 0 {
		return ""
	}
	return m.DN[:i]
}

// Child returns the direct child with the given relative name, or nil.
func (m *MO) Child(rn string) *MO {
	for _, c := range m.Children {
		if c.RN == rn {
			return c
		}
	}
	return nil
}

// AddChild appends a child, filling in the child's DN from the parent's.
func (m *MO) AddChild(c *MO) {
	if c.DN == "" && c.RN != "" {
		c.DN = m.DN + "/" + c.RN
	}
	m.Children = append(m.Children, c)
}

// propNames returns the MO's property names, sorted, so that encoding is
// deterministic.
func (m *MO) propNames() []string {
	names := make([]string, 0, len(m.Props))
	for k := range m.Props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// BoolString renders a Go bool as the "yes"/"no" strings the XML API uses
// for boolean properties.
func BoolString(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func (m *MO) String() string {
	return fmt.Sprintf("%s[%s]", m.ClassID, m.DN)
}
