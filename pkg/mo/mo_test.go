package mo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

func TestNew(t *testing.T) {
	t.Parallel()
	type testcase struct {
		ClassID  string
		ParentDN string
		Props    mo.Props
		ExpDN    string
		ExpErr   bool
	}
	testcases := map[string]testcase{
		"provider": {
			ClassID:  "aaaLdapProvider",
			ParentDN: "org-root/deviceprofile-default/ldap-ext",
			Props:    mo.Props{"name": "ldap1", "port": "389"},
			ExpDN:    "org-root/deviceprofile-default/ldap-ext/provider-ldap1",
		},
		"singleton-rn": {
			ClassID:  "aaaLdapGroupRule",
			ParentDN: "org-root/deviceprofile-default/ldap-ext/provider-ldap1",
			Props:    mo.Props{"authorization": "enable"},
			ExpDN:    "org-root/deviceprofile-default/ldap-ext/provider-ldap1/ldapgrouprule",
		},
		"missing-naming-prop": {
			ClassID:  "aaaLdapProvider",
			ParentDN: "org-root/deviceprofile-default/ldap-ext",
			Props:    mo.Props{"port": "389"},
			ExpErr:   true,
		},
		"naming-prop-with-slash": {
			ClassID:  "aaaLdapGroup",
			ParentDN: "org-root/deviceprofile-default/ldap-ext",
			Props:    mo.Props{"name": "bad/name"},
			ExpErr:   true,
		},
		"unregistered-class": {
			ClassID:  "fooBar",
			ParentDN: "org-root",
			Props:    mo.Props{"name": "x"},
			ExpErr:   true,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			m, err := mo.New(tcData.ClassID, tcData.ParentDN, tcData.Props)
			if tcData.ExpErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcData.ExpDN, m.DN)
			assert.Equal(t, tcData.ClassID, m.ClassID)
		})
	}
}

func TestSetSkipsStructuralProps(t *testing.T) {
	t.Parallel()
	m, err := mo.New("aaaLdapProvider", "org-root/deviceprofile-default/ldap-ext",
		mo.Props{"name": "ldap1"})
	require.NoError(t, err)

	m.Set(mo.Props{
		"dn":     "evil",
		"rn":     "evil",
		"status": "deleted",
		"port":   "636",
		"descr":  "",
	})
	assert.Equal(t, "org-root/deviceprofile-default/ldap-ext/provider-ldap1", m.DN)
	assert.Empty(t, m.Status)
	assert.Equal(t, "636", m.Prop("port"))
	_, hasDescr := m.Props["descr"]
	assert.False(t, hasDescr, "empty values must not be stored")
}

func TestMatch(t *testing.T) {
	t.Parallel()
	m := &mo.MO{
		ClassID: "aaaLdapProvider",
		DN:      "org-root/deviceprofile-default/ldap-ext/provider-ldap1",
		Props:   mo.Props{"name": "ldap1", "port": "389", "enableSSL": "no"},
	}
	assert.True(t, m.Match(nil))
	assert.True(t, m.Match(mo.Props{"port": "389"}))
	assert.True(t, m.Match(mo.Props{"port": "389", "enableSSL": "no"}))
	assert.False(t, m.Match(mo.Props{"port": "636"}))
	assert.False(t, m.Match(mo.Props{"vendor": "OpenLdap"}))
}

func TestParentDN(t *testing.T) {
	t.Parallel()
	m := &mo.MO{DN: "org-root/deviceprofile-default/ldap-ext"}
	assert.Equal(t, "org-root/deviceprofile-default", m.ParentDN())
	root := &mo.MO{DN: "org-root"}
	assert.Equal(t, "", root.ParentDN())
}

func TestBoolString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "yes", mo.BoolString(true))
	assert.Equal(t, "no", mo.BoolString(false))
}
