package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciscoucs/ucscgo/pkg/mo"
)

func TestParseProps(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input  []string
		Exp    mo.Props
		ExpErr string
	}
	testcases := map[string]testcase{
		"nil": {
			Input: nil,
			Exp:   mo.Props{},
		},
		"simple": {
			Input: []string{"port=636", "enableSSL=yes"},
			Exp:   mo.Props{"port": "636", "enableSSL": "yes"},
		},
		"value-contains-equals": {
			Input: []string{"rootdn=cn=admin,dc=example,dc=com"},
			Exp:   mo.Props{"rootdn": "cn=admin,dc=example,dc=com"},
		},
		"no-equals": {
			Input:  []string{"port"},
			ExpErr: "expected KEY=VALUE",
		},
		"no-key": {
			Input:  []string{"=636"},
			ExpErr: "expected KEY=VALUE",
		},
		"empty-value": {
			Input:  []string{"descr="},
			ExpErr: "cannot be cleared",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			props, err := parseProps(tcData.Input)
			if tcData.ExpErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tcData.ExpErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcData.Exp, props)
		})
	}
}
