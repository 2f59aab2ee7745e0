// Package scenario builds the containers described by a picky.yml file and
// replays its steps against them.
package scenario

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/picky/internal/config"
	"github.com/dyluth/picky/internal/report"
	"github.com/dyluth/picky/internal/resolver"
	"github.com/dyluth/picky/pkg/selection"
)

// OriginMeta is the Model.Meta key under which the runner records the name of
// the container whose pipeline augmented an item.
const OriginMeta = "origin"

// Publisher mirrors container events to an external observer.
// *feed.Client satisfies it.
type Publisher interface {
	Attach(ctx context.Context, name string, c *selection.Container) (detach func())
}

// Record is a container event observed while running a scenario.
type Record struct {
	Step      int    // 1-based step number, 0 for container construction
	Container string // Scenario name of the emitting container
	Event     selection.Event
}

// Runner owns the containers of one scenario run.
// A Runner is not safe for concurrent use.
type Runner struct {
	cfg        *config.ScenarioConfig
	publisher  Publisher
	containers map[string]*selection.Container
	detach     []func()
	records    []Record
	step       int
	built      bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithPublisher mirrors every container event through p.
func WithPublisher(p Publisher) Option {
	return func(r *Runner) { r.publisher = p }
}

// New creates a runner for a validated scenario.
func New(cfg *config.ScenarioConfig, opts ...Option) *Runner {
	r := &Runner{
		cfg:        cfg,
		containers: make(map[string]*selection.Container),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build creates every container with its initial population, in name order.
func (r *Runner) Build(ctx context.Context) error {
	if r.built {
		return nil
	}

	for _, name := range r.cfg.ContainerNames() {
		cc := r.cfg.Containers[name]

		c, err := selection.NewContainer(containerConfig(name, cc, r.recorder(name)), cc.Items, populationOptions(cc.Parse, "", false)...)
		if err != nil {
			return fmt.Errorf("failed to create container '%s': %w", name, err)
		}

		if r.publisher != nil {
			r.detach = append(r.detach, r.publisher.Attach(ctx, name, c))
		}

		r.containers[name] = c
		log.Printf("[Scenario] Created %s container '%s' with %d items", c.Kind(), name, c.Len())
	}

	r.built = true
	return nil
}

// recorder returns the listener that records the events of container name.
func (r *Runner) recorder(name string) selection.Listener {
	return func(ev selection.Event) {
		r.records = append(r.records, Record{Step: r.step, Container: name, Event: ev})
	}
}

// Run builds the containers and applies every step in order.
// It stops at the first failing step.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Build(ctx); err != nil {
		return err
	}

	for i := range r.cfg.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Apply(i); err != nil {
			return err
		}
	}

	return nil
}

// Apply executes step i of the scenario.
func (r *Runner) Apply(i int) error {
	if i < 0 || i >= len(r.cfg.Steps) {
		return fmt.Errorf("step %d does not exist", i+1)
	}
	s := r.cfg.Steps[i]
	r.step = i + 1

	if err := r.apply(&s); err != nil {
		return &StepError{Step: i + 1, Action: s.Action, Container: s.Container, Err: err}
	}

	log.Printf("[Scenario] Step %d: %s on '%s'", i+1, s.Action, s.Container)
	return nil
}

func (r *Runner) apply(s *config.Step) error {
	target, ok := r.containers[s.Container]
	if !ok {
		return fmt.Errorf("unknown container '%s'", s.Container)
	}
	if target.Closed() && s.Action != config.ActionClose {
		return selection.ErrClosed
	}

	var it *selection.Item
	if s.References() {
		source := target
		if s.From != "" {
			if source, ok = r.containers[s.From]; !ok {
				return fmt.Errorf("unknown source container '%s'", s.From)
			}
		}
		var err error
		if it, err = resolve(source, s); err != nil {
			return err
		}
	}

	opts := stepOptions(s)

	switch s.Action {
	case config.ActionSelect:
		target.Select(it, opts...)
	case config.ActionDeselect:
		target.Deselect(it, opts...)
	case config.ActionToggle:
		if target.Contains(it) {
			label := selection.Label(s.Label)
			if label == "" {
				label = target.DefaultLabel()
			}
			it.ToggleSelect(append(opts, selection.OnLabel(label))...)
		}
	case config.ActionRemove:
		_, err := target.Remove([]*selection.Item{it}, opts...)
		return err
	case config.ActionAdd, config.ActionSet, config.ActionReset:
		return r.populate(target, s, it, opts)
	case config.ActionSelectAll:
		return target.SelectAll(opts...)
	case config.ActionDeselectAll:
		target.DeselectAll(opts...)
	case config.ActionToggleAll:
		return target.ToggleSelectAll(opts...)
	case config.ActionClose:
		return target.Close()
	default:
		return fmt.Errorf("unknown action: %q", s.Action)
	}

	return nil
}

func (r *Runner) populate(target *selection.Container, s *config.Step, it *selection.Item, opts []selection.Option) error {
	var data any = s.Items
	if it != nil {
		data = []*selection.Item{it}
	}

	var err error
	switch s.Action {
	case config.ActionAdd:
		_, err = target.Add(data, opts...)
	case config.ActionSet:
		_, err = target.Set(data, opts...)
	case config.ActionReset:
		_, err = target.Reset(data, opts...)
	}
	return err
}

func resolve(c *selection.Container, s *config.Step) (*selection.Item, error) {
	if s.Index != nil {
		return resolver.ResolveIndex(c, *s.Index)
	}
	return resolver.ResolveItem(c, s.Item)
}

// Container returns the container with the given scenario name, or nil.
func (r *Runner) Container(name string) *selection.Container {
	return r.containers[name]
}

// Records returns the events observed so far, in delivery order.
func (r *Runner) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Snapshots captures every container, in name order.
func (r *Runner) Snapshots() []report.Named {
	snapshots := make([]report.Named, 0, len(r.containers))
	for _, name := range r.cfg.ContainerNames() {
		if c, ok := r.containers[name]; ok {
			snapshots = append(snapshots, report.Named{Name: name, Snapshot: c.Snapshot()})
		}
	}
	return snapshots
}

// Close stops mirroring events. Containers are left as they are.
func (r *Runner) Close() {
	for _, detach := range r.detach {
		detach()
	}
	r.detach = nil
}

// StepError reports the step that failed.
type StepError struct {
	Step      int
	Action    config.Action
	Container string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s on '%s'): %v", e.Step, e.Action, e.Container, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
