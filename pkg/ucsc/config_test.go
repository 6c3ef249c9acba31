package ucsc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciscoucs/ucscgo/pkg/ucsc"
	"github.com/ciscoucs/ucscgo/pkg/ucsctest"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input  ucsc.Config
		ExpErr bool
	}
	testcases := map[string]testcase{
		"ok": {
			Input: ucsc.Config{Endpoint: "https://ucs-central.example.com", Username: "admin"},
		},
		"no-endpoint": {
			Input:  ucsc.Config{Username: "admin"},
			ExpErr: true,
		},
		"bad-endpoint": {
			Input:  ucsc.Config{Endpoint: "not a url", Username: "admin"},
			ExpErr: true,
		},
		"no-username": {
			Input:  ucsc.Config{Endpoint: "https://ucs-central.example.com"},
			ExpErr: true,
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			err := tcData.Input.Validate()
			if tcData.ExpErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(good, []byte(""+
		"endpoint: https://ucs-central.example.com\n"+
		"username: admin\n"+
		"insecure: true\n"), 0o600))
	cfg, err := ucsc.LoadConfig(good)
	require.NoError(t, err)
	assert.Equal(t, "https://ucs-central.example.com", cfg.Endpoint)
	assert.True(t, cfg.Insecure)

	// Unknown fields are rejected so typos don't hide settings.
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte(""+
		"endpoint: https://ucs-central.example.com\n"+
		"username: admin\n"+
		"insecur: true\n"), 0o600))
	_, err = ucsc.LoadConfig(bad)
	assert.Error(t, err)

	_, err = ucsc.LoadConfig(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestRegisterMetrics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := ucsctest.NewSimulator()
	t.Cleanup(sim.Close)
	h, err := ucsc.NewHandle(ucsc.Config{
		Endpoint: sim.URL(),
		Username: ucsctest.DefaultUsername,
		Password: ucsctest.DefaultPassword,
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	require.NoError(t, h.RegisterMetrics(reg))

	require.NoError(t, h.Login(ctx))
	_, err = h.QueryDN(ctx, "org-root")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["ucsc_api_requests_total"])
	assert.True(t, names["ucsc_api_request_duration_seconds"])

	// Double registration is refused by the registry.
	assert.Error(t, h.RegisterMetrics(reg))
}
