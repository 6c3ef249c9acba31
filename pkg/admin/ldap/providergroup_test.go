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

func TestProviderGroupLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	created, err := ldap.ProviderGroupCreate(ctx, h, "pg1", "primary", nil)
	require.NoError(t, err)
	assert.Equal(t, "org-root/deviceprofile-default/ldap-ext/providergroup-pg1", created.DN)

	ok, _, err := ldap.ProviderGroupExists(ctx, h, "pg1", mo.Props{"descr": "primary"})
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := ldap.ProviderGroupList(ctx, h)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, ldap.ProviderGroupDelete(ctx, h, "pg1"))
	got, err := ldap.ProviderGroupGet(ctx, h, "pg1")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = ldap.ProviderGroupDelete(ctx, h, "pg1")
	var opErr *ucsc.OperationError
	assert.ErrorAs(t, err, &opErr)
}

func TestProviderGroupMembers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	var opErr *ucsc.OperationError

	// Both the group and the provider must exist before a reference can
	// be added.
	_, err := ldap.ProviderGroupProviderAdd(ctx, h, "pg1", "ldap1", intstr.FromInt(1), "", nil)
	require.ErrorAs(t, err, &opErr)

	_, err = ldap.ProviderGroupCreate(ctx, h, "pg1", "", nil)
	require.NoError(t, err)

	_, err = ldap.ProviderGroupProviderAdd(ctx, h, "pg1", "ldap1", intstr.FromInt(1), "", nil)
	require.ErrorAs(t, err, &opErr)

	_, err = ldap.ProviderCreate(ctx, h, ldap.Provider{Name: "ldap1"})
	require.NoError(t, err)

	ref, err := ldap.ProviderGroupProviderAdd(ctx, h, "pg1", "ldap1", intstr.FromInt(1), "", nil)
	require.NoError(t, err)
	assert.Equal(t,
		"org-root/deviceprofile-default/ldap-ext/providergroup-pg1/provider-ref-ldap1",
		ref.DN)
	ucsctest.AssertHasProps(t, ref, mo.Props{"order": "1"})

	ok, _, err := ldap.ProviderGroupProviderExists(ctx, h, "pg1", "ldap1", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	modified, err := ldap.ProviderGroupProviderModify(ctx, h, "pg1", "ldap1", mo.Props{"order": "2"})
	require.NoError(t, err)
	ucsctest.AssertHasProps(t, modified, mo.Props{"order": "2"})

	require.NoError(t, ldap.ProviderGroupProviderRemove(ctx, h, "pg1", "ldap1"))
	ok, _, err = ldap.ProviderGroupProviderExists(ctx, h, "pg1", "ldap1", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ldap.ProviderGroupProviderModify(ctx, h, "pg1", "ldap1", mo.Props{"order": "3"})
	require.ErrorAs(t, err, &opErr)
	err = ldap.ProviderGroupProviderRemove(ctx, h, "pg1", "ldap1")
	require.ErrorAs(t, err, &opErr)
}

func TestProviderGroupProviderAddOrderValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	_, err := ldap.ProviderGroupProviderAdd(ctx, h, "pg1", "ldap1", intstr.FromString("99"), "", nil)
	var opErr *ucsc.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Contains(t, opErr.Reason, "order")
}
