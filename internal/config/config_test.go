package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picky.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func intPtr(i int) *int { return &i }

func validConfig() *ScenarioConfig {
	return &ScenarioConfig{
		Version: "1.0",
		Containers: map[string]ContainerConfig{
			"colours": {Kind: "exclusive", Items: []map[string]any{{"id": "red"}, {"id": "blue"}}},
			"picks":   {Kind: "inclusive"},
		},
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
containers:
  colours:
    kind: exclusive
    default_label: focus
    items:
      - id: red
      - null
      - id: blue
  picks:
    kind: inclusive
steps:
  - container: colours
    action: select
    index: 1
  - container: picks
    action: add
    from: colours
    item: red
  - container: picks
    action: select_all
    label: starred
    silent: true
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, []string{"colours", "picks"}, config.ContainerNames())

	colours := config.Containers["colours"]
	assert.Equal(t, "focus", colours.DefaultLabel)
	require.Len(t, colours.Items, 3)
	assert.Nil(t, colours.Items[1])
	assert.Equal(t, "blue", colours.Items[2]["id"])

	require.Len(t, config.Steps, 3)
	assert.Equal(t, ActionSelect, config.Steps[0].Action)
	assert.Equal(t, 1, *config.Steps[0].Index)
	assert.Equal(t, "colours", config.Steps[1].From)
	assert.True(t, config.Steps[2].Silent)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/picky.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
containers:
  - this is invalid
    yaml syntax
`)

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
containers:
  colours:
    kind: multiple
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "invalid kind")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ScenarioConfig)
		wantErr string
	}{
		{"valid", func(*ScenarioConfig) {}, ""},
		{"unsupported version", func(c *ScenarioConfig) { c.Version = "2.0" }, "unsupported version: 2.0"},
		{"no containers", func(c *ScenarioConfig) { c.Containers = nil }, "no containers defined"},
		{
			"parse without unwrap",
			func(c *ScenarioConfig) { c.Containers["picks"] = ContainerConfig{Kind: "inclusive", Parse: true} },
			"parse requires an unwrap key",
		},
		{
			"unknown action",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "colours", Action: "click"}} },
			"step 1: unknown action",
		},
		{
			"unknown container",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "shapes", Action: ActionClose}} },
			"unknown container 'shapes'",
		},
		{
			"select without reference",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "colours", Action: ActionSelect}} },
			"select requires index or item",
		},
		{
			"exclusive deselect without reference",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "colours", Action: ActionDeselect}} },
			"",
		},
		{
			"inclusive deselect without reference",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "picks", Action: ActionDeselect}} },
			"deselect requires index or item",
		},
		{
			"index and item",
			func(c *ScenarioConfig) {
				c.Steps = []Step{{Container: "colours", Action: ActionSelect, Index: intPtr(0), Item: "red"}}
			},
			"mutually exclusive",
		},
		{
			"negative index",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "colours", Action: ActionSelect, Index: intPtr(-1)}} },
			"index must be >= 0",
		},
		{
			"from without reference",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "picks", Action: ActionAdd, From: "colours"}} },
			"from requires index or item",
		},
		{
			"unknown source",
			func(c *ScenarioConfig) {
				c.Steps = []Step{{Container: "picks", Action: ActionAdd, From: "shapes", Item: "red"}}
			},
			"unknown source container 'shapes'",
		},
		{
			"add reference without from",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "picks", Action: ActionAdd, Item: "red"}} },
			"references an item without from",
		},
		{
			"select_all on exclusive",
			func(c *ScenarioConfig) { c.Steps = []Step{{Container: "colours", Action: ActionSelectAll}} },
			"requires an inclusive container",
		},
		{
			"close with items",
			func(c *ScenarioConfig) {
				c.Steps = []Step{{Container: "colours", Action: ActionClose, Items: []map[string]any{{}}}}
			},
			"takes no item reference or items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFeedConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PICKY_REDIS_URL", "")
		t.Setenv("PICKY_INSTANCE_NAME", "")

		cfg, err := LoadFeedConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled())
		assert.Equal(t, DefaultInstanceName, cfg.InstanceName)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("PICKY_REDIS_URL", "redis://localhost:6379/2")
		t.Setenv("PICKY_INSTANCE_NAME", "demo")

		cfg, err := LoadFeedConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Enabled())
		assert.Equal(t, "demo", cfg.InstanceName)

		opts, err := cfg.RedisOptions()
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", opts.Addr)
		assert.Equal(t, 2, opts.DB)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Setenv("PICKY_REDIS_URL", "http://localhost")
		t.Setenv("PICKY_INSTANCE_NAME", "")

		_, err := LoadFeedConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PICKY_REDIS_URL")
	})
}

func TestFeedConfigMerge(t *testing.T) {
	cfg := &FeedConfig{InstanceName: DefaultInstanceName}
	cfg.Merge(&FeedSection{RedisURL: "redis://localhost:6379", InstanceName: "scenario"})
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "scenario", cfg.InstanceName)

	explicit := &FeedConfig{RedisURL: "redis://other:6379", InstanceName: "cli"}
	explicit.Merge(&FeedSection{RedisURL: "redis://localhost:6379", InstanceName: "scenario"})
	assert.Equal(t, "redis://other:6379", explicit.RedisURL)
	assert.Equal(t, "cli", explicit.InstanceName)

	explicit.Merge(nil)
	assert.Equal(t, "cli", explicit.InstanceName)
}
