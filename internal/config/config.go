package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ScenarioConfig represents the top-level picky.yml configuration
type ScenarioConfig struct {
	Version    string                     `yaml:"version"`
	Feed       *FeedSection               `yaml:"feed,omitempty"`
	Containers map[string]ContainerConfig `yaml:"containers"`
	Steps      []Step                     `yaml:"steps"`
}

// FeedSection names the Redis feed the scenario mirrors its events to.
// Flags and environment variables override it.
type FeedSection struct {
	RedisURL     string `yaml:"redis_url,omitempty"`
	InstanceName string `yaml:"instance_name,omitempty"`
}

// ContainerConfig describes one container and its initial population
type ContainerConfig struct {
	Kind         string           `yaml:"kind"`                    // Required: exclusive or inclusive
	DefaultLabel string           `yaml:"default_label,omitempty"` // Default: selected
	Unwrap       string           `yaml:"unwrap,omitempty"`        // Parser key: parsed populations use element[unwrap]
	Parse        bool             `yaml:"parse,omitempty"`         // Run the parser on the initial population
	Items        []map[string]any `yaml:"items"`                   // Null entries become empty items
}

// Action is a scenario step verb
type Action string

const (
	ActionSelect      Action = "select"
	ActionDeselect    Action = "deselect"
	ActionToggle      Action = "toggle"
	ActionAdd         Action = "add"
	ActionSet         Action = "set"
	ActionReset       Action = "reset"
	ActionRemove      Action = "remove"
	ActionSelectAll   Action = "select_all"
	ActionDeselectAll Action = "deselect_all"
	ActionToggleAll   Action = "toggle_all"
	ActionClose       Action = "close"
)

// Validate checks if the Action is a known verb.
func (a Action) Validate() error {
	switch a {
	case ActionSelect, ActionDeselect, ActionToggle, ActionAdd, ActionSet, ActionReset,
		ActionRemove, ActionSelectAll, ActionDeselectAll, ActionToggleAll, ActionClose:
		return nil
	default:
		return fmt.Errorf("unknown action: %q", a)
	}
}

// targetsItem reports whether the action operates on a single referenced item.
func (a Action) targetsItem() bool {
	switch a {
	case ActionSelect, ActionDeselect, ActionToggle, ActionRemove:
		return true
	}
	return false
}

// populates reports whether the action takes a population.
func (a Action) populates() bool {
	switch a {
	case ActionAdd, ActionSet, ActionReset:
		return true
	}
	return false
}

// Step is a single scenario instruction applied to one container
type Step struct {
	Container    string           `yaml:"container"`
	Action       Action           `yaml:"action"`
	Index        *int             `yaml:"index,omitempty"`         // Member position
	Item         string           `yaml:"item,omitempty"`          // Member ID or unique prefix
	From         string           `yaml:"from,omitempty"`          // Resolve index/item in this container instead
	Label        string           `yaml:"label,omitempty"`         // Selection channel (default: the container's)
	DefaultLabel string           `yaml:"default_label,omitempty"` // Default label of items created by the step
	Silent       bool             `yaml:"silent,omitempty"`
	Parse        bool             `yaml:"parse,omitempty"`
	Items        []map[string]any `yaml:"items,omitempty"`
}

// References reports whether the step names an existing item.
func (s *Step) References() bool {
	return s.Index != nil || s.Item != ""
}

// Validate performs strict validation on the configuration
func (c *ScenarioConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if len(c.Containers) == 0 {
		return fmt.Errorf("no containers defined")
	}

	for _, name := range c.ContainerNames() {
		container := c.Containers[name]
		if err := container.Validate(name); err != nil {
			return err
		}
	}

	for i := range c.Steps {
		if err := c.validateStep(i, &c.Steps[i]); err != nil {
			return err
		}
	}

	return nil
}

// Validate performs validation on a single container configuration
func (cc *ContainerConfig) Validate(name string) error {
	if name == "" {
		return fmt.Errorf("container name cannot be empty")
	}

	if cc.Kind != "exclusive" && cc.Kind != "inclusive" {
		return fmt.Errorf("container '%s': invalid kind: %q (must be 'exclusive' or 'inclusive')", name, cc.Kind)
	}

	if cc.Parse && cc.Unwrap == "" {
		return fmt.Errorf("container '%s': parse requires an unwrap key", name)
	}

	return nil
}

func (c *ScenarioConfig) validateStep(i int, s *Step) error {
	if err := s.Action.Validate(); err != nil {
		return fmt.Errorf("step %d: %w", i+1, err)
	}

	target, ok := c.Containers[s.Container]
	if !ok {
		return fmt.Errorf("step %d: unknown container '%s'", i+1, s.Container)
	}

	if s.Index != nil && s.Item != "" {
		return fmt.Errorf("step %d: index and item are mutually exclusive", i+1)
	}
	if s.Index != nil && *s.Index < 0 {
		return fmt.Errorf("step %d: index must be >= 0, got %d", i+1, *s.Index)
	}

	if s.From != "" {
		if _, ok := c.Containers[s.From]; !ok {
			return fmt.Errorf("step %d: unknown source container '%s'", i+1, s.From)
		}
		if !s.References() {
			return fmt.Errorf("step %d: from requires index or item", i+1)
		}
	}

	switch {
	case s.Action.targetsItem():
		// Exclusive deselect without a reference deselects the current holder
		if !s.References() && !(s.Action == ActionDeselect && target.Kind == "exclusive") {
			return fmt.Errorf("step %d: %s requires index or item", i+1, s.Action)
		}
		if len(s.Items) > 0 {
			return fmt.Errorf("step %d: %s does not take items", i+1, s.Action)
		}

	case s.Action.populates():
		if len(s.Items) > 0 && s.From != "" {
			return fmt.Errorf("step %d: items and from are mutually exclusive", i+1)
		}
		if s.From == "" && s.References() {
			return fmt.Errorf("step %d: %s references an item without from", i+1, s.Action)
		}
		if s.Parse && target.Unwrap == "" {
			return fmt.Errorf("step %d: parse requires an unwrap key on container '%s'", i+1, s.Container)
		}

	default:
		if s.References() || len(s.Items) > 0 || s.From != "" {
			return fmt.Errorf("step %d: %s takes no item reference or items", i+1, s.Action)
		}
		if (s.Action == ActionSelectAll || s.Action == ActionToggleAll) && target.Kind != "inclusive" {
			return fmt.Errorf("step %d: %s requires an inclusive container", i+1, s.Action)
		}
	}

	return nil
}

// ContainerNames returns the container names in creation order (sorted).
func (c *ScenarioConfig) ContainerNames() []string {
	names := make([]string, 0, len(c.Containers))
	for name := range c.Containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads and validates picky.yml from the specified path
func Load(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config ScenarioConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
