package ucsc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	return sim, h
}

func TestLoginLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)

	assert.Empty(t, h.Cookie())
	require.NoError(t, h.Login(ctx))
	assert.NotEmpty(t, h.Cookie())
	assert.NotZero(t, h.RefreshPeriod())

	require.NoError(t, h.Logout(ctx))
	assert.Empty(t, h.Cookie())
	// Logging out twice is fine.
	require.NoError(t, h.Logout(ctx))
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := ucsctest.NewSimulator()
	t.Cleanup(sim.Close)
	h, err := ucsc.NewHandle(ucsc.Config{
		Endpoint: sim.URL(),
		Username: ucsctest.DefaultUsername,
		Password: "wrong",
	})
	require.NoError(t, err)

	err = h.Login(ctx)
	var apiErr *ucsc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 551, apiErr.Code)
}

func TestRefreshSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))
	before := h.Cookie()
	require.NoError(t, h.RefreshSession(ctx))
	assert.NotEqual(t, before, h.Cookie())
	assert.NotEmpty(t, h.Cookie())
}

func TestQueryDN(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	m, err := h.QueryDN(ctx, "org-root/deviceprofile-default/ldap-ext")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "aaaLdapEp", m.ClassID)
	assert.Equal(t, "ldap-ext", m.RN)

	// Absent objects are (nil, nil), not an error.
	m, err = h.QueryDN(ctx, "org-root/deviceprofile-default/ldap-ext/provider-nope")
	require.NoError(t, err)
	assert.Nil(t, m)

	_, err = h.QueryDN(ctx, "")
	assert.Error(t, err)
}

func TestQueryRequiresLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, h := newTestHandle(t)
	_, err := h.QueryDN(ctx, "org-root")
	assert.ErrorIs(t, err, ucsc.ErrNotLoggedIn)
}

func TestStaleCookieRelogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	sim.ExpireSessions()

	// The handle knows the password, so it re-logins transparently.
	m, err := h.QueryDN(ctx, "org-root")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "orgOrg", m.ClassID)
}

func TestStaleCookieWithoutCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	resumed, err := ucsc.NewHandle(ucsc.Config{
		Endpoint: sim.URL(),
		Username: ucsctest.DefaultUsername,
	})
	require.NoError(t, err)
	resumed.ResumeSession(h.Cookie())

	m, err := resumed.QueryDN(ctx, "org-root")
	require.NoError(t, err)
	require.NotNil(t, m)

	// Without a password the resumed handle can't recover from expiry.
	sim.ExpireSessions()
	_, err = resumed.QueryDN(ctx, "org-root")
	var apiErr *ucsc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 552, apiErr.Code)
}

func TestQueryClassIDAndChildren(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	extDN := "org-root/deviceprofile-default/ldap-ext"
	_, err := sim.Seed("aaaLdapProvider", extDN, mo.Props{"name": "ldap1", "port": "389"})
	require.NoError(t, err)
	_, err = sim.Seed("aaaLdapProvider", extDN, mo.Props{"name": "ldap2", "port": "636"})
	require.NoError(t, err)
	_, err = sim.Seed("aaaProviderGroup", extDN, mo.Props{"name": "pg1"})
	require.NoError(t, err)

	all, err := h.QueryClassID(ctx, "aaaLdapProvider")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	children, err := h.QueryChildren(ctx, extDN, "aaaLdapProvider")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "ldap1", children[0].Prop("name"))
	assert.Equal(t, "ldap2", children[1].Prop("name"))

	children, err = h.QueryChildren(ctx, extDN, "")
	require.NoError(t, err)
	assert.Len(t, children, 3)
}

func TestCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	// Committing nothing is a no-op.
	out, err := h.Commit(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)

	extDN := "org-root/deviceprofile-default/ldap-ext"
	m, err := mo.New("aaaLdapProvider", extDN, mo.Props{"name": "ldap1", "port": "389"})
	require.NoError(t, err)
	h.AddMO(m, false)
	assert.Equal(t, 1, h.Staged())

	out, err = h.Commit(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, mo.StatusCreated, out[0].Status)
	assert.Equal(t, 0, h.Staged())

	stored := sim.Get(m.DN)
	require.NotNil(t, stored)
	ucsctest.AssertHasProps(t, stored, mo.Props{"name": "ldap1", "port": "389"})

	// Creating again without modifyPresent fails; the buffer is cleared
	// either way.
	dup, err := mo.New("aaaLdapProvider", extDN, mo.Props{"name": "ldap1"})
	require.NoError(t, err)
	h.AddMO(dup, false)
	_, err = h.Commit(ctx)
	var apiErr *ucsc.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 105, apiErr.Code)
	assert.Equal(t, 0, h.Staged())

	// With modifyPresent it degrades to an update.
	upd, err := mo.New("aaaLdapProvider", extDN, mo.Props{"name": "ldap1", "port": "636"})
	require.NoError(t, err)
	h.AddMO(upd, true)
	out, err = h.Commit(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, mo.StatusModified, out[0].Status)
	ucsctest.AssertHasProps(t, sim.Get(m.DN), mo.Props{"port": "636"})

	// Delete removes the subtree.
	h.RemoveMO(upd)
	_, err = h.Commit(ctx)
	require.NoError(t, err)
	assert.Nil(t, sim.Get(m.DN))
}

func TestStageReplacesByDN(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	extDN := "org-root/deviceprofile-default/ldap-ext"
	first, err := mo.New("aaaLdapProvider", extDN, mo.Props{"name": "ldap1", "port": "389"})
	require.NoError(t, err)
	second, err := mo.New("aaaLdapProvider", extDN, mo.Props{"name": "ldap1", "port": "636"})
	require.NoError(t, err)

	h.AddMO(first, false)
	h.AddMO(second, false)
	assert.Equal(t, 1, h.Staged())

	_, err = h.Commit(ctx)
	require.NoError(t, err)
	ucsctest.AssertHasProps(t, sim.Get(first.DN), mo.Props{"port": "636"})
}

func TestDiscardStaged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim, h := newTestHandle(t)
	require.NoError(t, h.Login(ctx))

	m, err := mo.New("aaaLocale", "org-root/deviceprofile-default", mo.Props{"name": "west"})
	require.NoError(t, err)
	h.AddMO(m, false)
	h.DiscardStaged()
	assert.Equal(t, 0, h.Staged())

	out, err := h.Commit(ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Nil(t, sim.Get(m.DN))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	assert.True(t, ucsc.IsNotFound(&ucsc.APIError{Code: 103}))
	assert.False(t, ucsc.IsNotFound(&ucsc.APIError{Code: 105}))
	assert.False(t, ucsc.IsNotFound(errors.New("other")))
}
