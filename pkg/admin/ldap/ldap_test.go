package ldap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/ciscoucs/ucscgo/pkg/admin/ldap"
	"github.com/ciscoucs/ucscgo/pkg/mo"
	"github.com/ciscoucs/ucscgo/pkg/ucsc"
	"github.com/ciscoucs/ucscgo/pkg/ucsctest"
)

func newTestHandle(t *testing.T) (*ucsctest.Simulator, *ucsc.Handle) {
	t.Helper()
	sim := ucsctest.NewSimulator()
	t.Cleanup(sim.Close)
	h, err := ucsc.NewHandle(ucsc.Config{
		Endpoint: sim.URL(),
		Username: ucsctest.DefaultUsername,
		Password: ucsctest.DefaultPassword,
	})
	require.NoError(t, err)
	require.NoError(t, h.Login(context.Background()))
	return sim, h
}

func TestProviderLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	created, err := ldap.ProviderCreate(ctx, h, ldap.Provider{
		Name:   "ldap1",
		RootDN: "cn=admin,dc=example,dc=com",
		BaseDN: "dc=example,dc=com",
	})
	require.NoError(t, err)
	assert.Equal(t, "org-root/deviceprofile-default/ldap-ext/provider-ldap1", created.DN)

	got, err := ldap.ProviderGet(ctx, h, "ldap1")
	require.NoError(t, err)
	require.NotNil(t, got)
	ucsctest.AssertHasProps(t, got, mo.Props{
		"port":      "389",
		"enableSSL": "no",
		"timeout":   "30",
		"retries":   "1",
		"vendor":    "OpenLdap",
		"order":     "lowest-available",
		"rootdn":    "cn=admin,dc=example,dc=com",
	})

	ok, m, err := ldap.ProviderExists(ctx, h, "ldap1", mo.Props{"port": "389"})
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, m)

	ok, m, err = ldap.ProviderExists(ctx, h, "ldap1", mo.Props{"port": "636"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)

	modified, err := ldap.ProviderModify(ctx, h, "ldap1", mo.Props{"enableSSL": "yes", "port": "636"})
	require.NoError(t, err)
	ucsctest.AssertHasProps(t, modified, mo.Props{"enableSSL": "yes", "port": "636"})

	list, err := ldap.ProviderList(ctx, h)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, ldap.ProviderDelete(ctx, h, "ldap1"))
	got, err = ldap.ProviderGet(ctx, h, "ldap1")
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, _, err = ldap.ProviderExists(ctx, h, "ldap1", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProviderCreateRequiresContainer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	sim.Delete("org-root/deviceprofile-default/ldap-ext")

	_, err := ldap.ProviderCreate(ctx, h, ldap.Provider{Name: "ldap1"})
	var opErr *ucsc.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "ldap.ProviderCreate", opErr.Op)
}

func TestProviderOrderValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	type testcase struct {
		Order  intstr.IntOrString
		ExpErr bool
	}
	testcases := map[string]testcase{
		"zero-value":       {Order: intstr.IntOrString{}},
		"lowest-available": {Order: ldap.OrderLowestAvailable},
		"int":              {Order: intstr.FromInt(3)},
		"int-string":       {Order: intstr.FromString("16")},
		"too-big":          {Order: intstr.FromInt(17), ExpErr: true},
		"negative":         {Order: intstr.FromString("-1"), ExpErr: true},
		"garbage":          {Order: intstr.FromString("first"), ExpErr: true},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			_, err := ldap.ProviderCreate(ctx, h, ldap.Provider{
				Name:  "order-" + tcName,
				Order: tcData.Order,
			})
			if tcData.ExpErr {
				var opErr *ucsc.OperationError
				assert.ErrorAs(t, err, &opErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestModifyMissingProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	_, err := ldap.ProviderModify(ctx, h, "ghost", mo.Props{"port": "636"})
	var opErr *ucsc.OperationError
	require.ErrorAs(t, err, &opErr)

	err = ldap.ProviderDelete(ctx, h, "ghost")
	require.ErrorAs(t, err, &opErr)
}

func TestProviderGroupRules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	_, err := ldap.ProviderGroupRulesConfigure(ctx, h, "ghost", ldap.GroupRule{})
	var opErr *ucsc.OperationError
	require.ErrorAs(t, err, &opErr)

	_, err = ldap.ProviderCreate(ctx, h, ldap.Provider{Name: "ldap1"})
	require.NoError(t, err)

	rule, err := ldap.ProviderGroupRulesConfigure(ctx, h, "ldap1", ldap.GroupRule{
		Authorization: "enable",
		Traversal:     "recursive",
	})
	require.NoError(t, err)
	assert.Equal(t, "org-root/deviceprofile-default/ldap-ext/provider-ldap1/ldapgrouprule", rule.DN)
	ucsctest.AssertHasProps(t, rule, mo.Props{"authorization": "enable", "traversal": "recursive"})
}
