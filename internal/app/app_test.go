package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-harness/internal/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

func TestInitApp(t *testing.T) {
	root := t.TempDir()
	v := config.SetupViper(root, nil)

	app, err := InitApp(v, usecase.NopProgress{})
	require.NoError(t, err)

	assert.Equal(t, root, app.Config.ProjectRoot)
	assert.Nil(t, app.Config.Network)
	assert.NotNil(t, app.Log)
	assert.NotNil(t, app.RunScenarios)
	assert.NotNil(t, app.DeployCounter)
	assert.NotNil(t, app.InvokeCounter)
	assert.NotNil(t, app.ListDeployments)
	assert.NotNil(t, app.ListNetworks)
	assert.NotNil(t, app.BuildContracts)
	assert.NotNil(t, app.ManageAnvil)
}

func TestInitApp_UnknownNetwork(t *testing.T) {
	v := config.SetupViper(t.TempDir(), nil)
	v.Set("network", "nowhere")

	_, err := InitApp(v, usecase.NopProgress{})
	assert.ErrorContains(t, err, "nowhere")
}
