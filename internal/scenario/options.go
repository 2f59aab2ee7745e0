package scenario

import (
	"fmt"

	"github.com/dyluth/picky/internal/config"
	"github.com/dyluth/picky/pkg/selection"
)

// containerConfig translates a scenario container into a selection.Config.
// Every container gets a mixin that tags the items it augments with its name,
// and listen receives its events from construction on.
func containerConfig(name string, cc config.ContainerConfig, listen selection.Listener) selection.Config {
	cfg := selection.Config{
		Kind:         selection.Kind(cc.Kind),
		DefaultLabel: selection.Label(cc.DefaultLabel),
		Mixin:        originMixin(name),
		Listener:     listen,
	}
	if cc.Unwrap != "" {
		cfg.Parser = unwrapParser(cc.Unwrap)
	}
	return cfg
}

func originMixin(name string) selection.Mixin {
	return func(m *selection.Model, c *selection.Container, opts selection.Options) *selection.Item {
		it := selection.DefaultMixin(m, c, opts)
		m.Meta[OriginMeta] = name
		return it
	}
}

// unwrapParser replaces every record of a population with its value under key.
// Null records stay null.
func unwrapParser(key string) selection.Parser {
	return func(raw any) (any, error) {
		records, ok := raw.([]map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a list of records, got %T", raw)
		}

		out := make([]any, len(records))
		for i, rec := range records {
			if rec == nil {
				continue
			}
			v, ok := rec[key]
			if !ok {
				return nil, fmt.Errorf("record %d has no %q key", i, key)
			}
			out[i] = v
		}
		return out, nil
	}
}

func populationOptions(parse bool, defaultLabel string, silent bool) []selection.Option {
	var opts []selection.Option
	if parse {
		opts = append(opts, selection.Parsed())
	}
	if defaultLabel != "" {
		opts = append(opts, selection.WithDefaultLabel(selection.Label(defaultLabel)))
	}
	if silent {
		opts = append(opts, selection.Silently())
	}
	return opts
}

func stepOptions(s *config.Step) []selection.Option {
	opts := populationOptions(s.Parse, s.DefaultLabel, s.Silent)
	if s.Label != "" {
		opts = append(opts, selection.OnLabel(selection.Label(s.Label)))
	}
	return opts
}
