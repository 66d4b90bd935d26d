package main

import (
	"testing"

	"github.com/shopcraft/ecommerce-api/models"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoles(t *testing.T) {
	testCases := []struct {
		raw     string
		want    models.Roles
		wantErr bool
	}{
		{raw: "admin", want: models.Roles{Admin: true}},
		{raw: "admin, Customer", want: models.Roles{Admin: true, Customer: true}},
		{raw: "supplier,,", want: models.Roles{Supplier: true}},
		{raw: "", want: models.Roles{}},
		{raw: "owner", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseRoles(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{{"serve"}, {"migrate"}, {"users", "grant"}} {
		cmd, _, err := root.Find(path)
		assert.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	grant, _, _ := root.Find([]string{"users", "grant"})
	assert.NotNil(t, grant.Flags().Lookup(usernameFlag))
	assert.NotNil(t, grant.Flags().Lookup(rolesFlag))
	assert.NotNil(t, grant.Flags().Lookup(envFileFlag))
}

func TestEnvFileFlagPerCommand(t *testing.T) {
	testCases := []struct {
		name string
		cmd  func() *cobra.Command
	}{
		{name: "serve", cmd: newServeCommand},
		{name: "migrate", cmd: newMigrateCommand},
		{name: "grant", cmd: func() *cobra.Command {
			grant, _, err := newUsersCommand().Find([]string{"grant"})
			require.NoError(t, err)
			return grant
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := tc.cmd()
			assert.Equal(t, ".env", envFile(cmd))

			require.NoError(t, cmd.ParseFlags([]string{"--env-file", "custom.env"}))
			assert.Equal(t, "custom.env", envFile(cmd))
		})
	}
}

func TestEnvFileFlagFromRoot(t *testing.T) {
	for _, path := range [][]string{{"serve"}, {"migrate"}, {"users", "grant"}} {
		root := newRootCommand()
		cmd, _, err := root.Find(path)
		require.NoError(t, err)

		require.NoError(t, cmd.ParseFlags([]string{"--env-file", "custom.env"}))
		assert.Equal(t, "custom.env", envFile(cmd), path)
	}
}
