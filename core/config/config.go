// Package config resolves generation options for one target type from CLI
// flags and an optional YAML file. The resolved Config is consumed as a
// contract by the protocol builder and the emitter; conflicting or unknown
// options abort generation before any output is written.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/codewandler/actgen-go/core/ds"
)

// ErrConfig is wrapped by every option rejection.
var ErrConfig = errors.New("invalid generation config")

// Backend selects the execution family the dispatcher is spawned on.
type Backend string

const (
	// BackendTask runs the dispatcher as a goroutine; handle calls suspend
	// the calling goroutine. The default.
	BackendTask Backend = "task"
	// BackendThread pins the dispatcher to a dedicated OS thread.
	BackendThread Backend = "thread"
)

// Config is the resolved option set for one target type.
type Config struct {
	// Type and Source come from the CLI, never the YAML file.
	Type   string `yaml:"-"`
	Source string `yaml:"-"`

	// Output is the generated file path. Empty derives
	// <source-without-ext>_actor.go.
	Output string `yaml:"output"`

	// Capacity bounds the mailbox; a full mailbox applies backpressure to
	// senders. 0 means unbounded.
	Capacity int `yaml:"capacity"`

	// Backend selects task or thread execution. Defaults to task.
	Backend Backend `yaml:"backend"`

	// Identity stamps every handle (and clone) with a process-unique,
	// strictly increasing id and emits ID/Equal/Less.
	Identity bool `yaml:"identity"`

	// Methods optionally restricts and re-orders the generated operations.
	// Default: all methods in declaration order.
	Methods []string `yaml:"methods"`

	// Overrides lists methods dispatched through a caller-supplied hook
	// instead of the real method.
	Overrides []string `yaml:"overrides"`

	// Wait forces listed unit methods to wait for completion instead of
	// fire-and-forget.
	Wait []string `yaml:"wait"`

	// FireAndForget forces listed methods to fire-and-forget. Only valid
	// for methods without results.
	FireAndForget []string `yaml:"fire_and_forget"`

	// Naming is a template over {{.Type}} producing the base name for all
	// generated identifiers. Default "{{.Type}}".
	Naming string `yaml:"naming"`
}

// Normalize fills defaults in place.
func (c *Config) Normalize() {
	if c.Backend == "" {
		c.Backend = BackendTask
	}
	if c.Naming == "" {
		c.Naming = "{{.Type}}"
	}
}

// OverrideSet returns the override targets as an ordered set.
func (c Config) OverrideSet() *ds.StringSet { return ds.NewSet(c.Overrides...) }

// WaitSet returns the forced-wait methods as an ordered set.
func (c Config) WaitSet() *ds.StringSet { return ds.NewSet(c.Wait...) }

// FireAndForgetSet returns the forced fire-and-forget methods as an ordered set.
func (c Config) FireAndForgetSet() *ds.StringSet { return ds.NewSet(c.FireAndForget...) }

// BaseName expands the naming template for the configured type.
func (c Config) BaseName() (string, error) {
	tpl, err := template.New("naming").Parse(c.Naming)
	if err != nil {
		return "", fmt.Errorf("%w: naming template: %v", ErrConfig, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct{ Type string }{Type: c.Type}); err != nil {
		return "", fmt.Errorf("%w: naming template: %v", ErrConfig, err)
	}
	name := buf.String()
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("%w: naming template produced %q, not a Go identifier", ErrConfig, name)
	}
	return name, nil
}

// Validate rejects option combinations that are wrong regardless of the
// target's signatures. Cross-checks against the signature model (unknown
// override targets, forced fire-and-forget on value methods) happen in the
// protocol builder.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendTask, BackendThread:
	default:
		return fmt.Errorf("%w: unknown backend %q (want %q or %q)", ErrConfig, c.Backend, BackendTask, BackendThread)
	}

	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be >= 0, got %d", ErrConfig, c.Capacity)
	}

	if both := c.WaitSet().Intersect(c.FireAndForgetSet()); both.Len() > 0 {
		return fmt.Errorf("%w: methods forced both wait and fire-and-forget: %v", ErrConfig, both)
	}

	if _, err := c.BaseName(); err != nil {
		return err
	}

	return nil
}

// Canonical returns a stable one-line rendering of every option that
// affects the generated output. It feeds the output fingerprint.
func (c Config) Canonical() string {
	var b strings.Builder
	fmt.Fprintf(&b, "type=%s;capacity=%d;backend=%s;identity=%t", c.Type, c.Capacity, c.Backend, c.Identity)
	fmt.Fprintf(&b, ";methods=%s", strings.Join(c.Methods, ","))
	fmt.Fprintf(&b, ";overrides=%s", strings.Join(c.Overrides, ","))
	fmt.Fprintf(&b, ";wait=%s", strings.Join(c.Wait, ","))
	fmt.Fprintf(&b, ";fnf=%s", strings.Join(c.FireAndForget, ","))
	fmt.Fprintf(&b, ";naming=%s", c.Naming)
	return b.String()
}

// File is the YAML configuration file: per-type option blocks.
//
//	types:
//	  Counter:
//	    capacity: 64
//	    identity: true
//	    overrides: [GetValue]
type File struct {
	Types map[string]Config `yaml:"types"`
}

// Load reads and strictly decodes a YAML config file. Unknown keys are
// ConfigErrors, not silently ignored.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &f, nil
}

// For returns the file's block for typeName, normalized, with Type set.
// Missing blocks yield a normalized default Config.
func (f *File) For(typeName string) Config {
	var c Config
	if f != nil {
		c = f.Types[typeName]
	}
	c.Type = typeName
	c.Normalize()
	return c
}
