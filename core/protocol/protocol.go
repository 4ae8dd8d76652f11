// Package protocol derives the tagged-union message protocol from a
// signature model and a generation config: exactly one variant per
// non-constructor method, in declaration order, each knowing whether its
// calls wait for a reply and whether it dispatches through an override
// hook. This is the contract both generators (dispatcher and handle) are
// emitted against, which is what keeps the two sides exhaustive and in
// agreement.
package protocol

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/codewandler/actgen-go/core/config"
	"github.com/codewandler/actgen-go/core/ds"
	"github.com/codewandler/actgen-go/core/model"
)

// Variant is one message of the protocol, mirroring one method.
type Variant struct {
	Method model.Method
	// StructName is the emitted variant struct, e.g. counterAddNumberMsg.
	StructName string
	// Waits marks calls that block/suspend for a reply. Fire-and-forget
	// variants carry no reply slot and return once enqueued.
	Waits bool
	// Override routes dispatch through the caller-supplied hook instead of
	// the real method. Resolved here, at generation time, into a static
	// dispatcher arm.
	Override bool
}

// Protocol is the full message protocol for one target type.
type Protocol struct {
	Interface *model.Interface
	// Base is the resolved naming-template output all generated
	// identifiers derive from.
	Base string
	// IfaceName is the unexported marker interface, e.g. counterMsg.
	IfaceName string
	// MarkerMethod tags variant structs as members, e.g. isCounterMsg.
	MarkerMethod string
	// Variants holds one entry per non-constructor method, in declaration
	// order.
	Variants []Variant
}

// HasOverrides reports whether any variant dispatches through a hook.
func (p *Protocol) HasOverrides() bool {
	for _, v := range p.Variants {
		if v.Override {
			return true
		}
	}
	return false
}

// Build derives the protocol. It cross-validates the config against the
// model: unknown override/wait/fire-and-forget targets and forced
// fire-and-forget on value-returning methods are ConfigErrors; an explicit
// method list is resolved through the model's own signature checks.
func Build(iface *model.Interface, cfg config.Config) (*Protocol, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := cfg.BaseName()
	if err != nil {
		return nil, err
	}

	if len(cfg.Methods) > 0 {
		if err := iface.Select(cfg.Methods); err != nil {
			return nil, err
		}
	}

	known := iface.MethodNames()
	for _, targets := range []struct {
		what string
		set  *ds.StringSet
	}{
		{"override", cfg.OverrideSet()},
		{"wait", cfg.WaitSet()},
		{"fire_and_forget", cfg.FireAndForgetSet()},
	} {
		if unknown := targets.set.Without(known); unknown.Len() > 0 {
			return nil, fmt.Errorf("%w: %s target names non-existent method(s) %v on %s",
				config.ErrConfig, targets.what, unknown, iface.TypeName)
		}
	}

	// the handle declares its own lifecycle methods next to the proxies, so
	// a method reusing one of those names cannot be mirrored
	reserved := ds.NewSet("Clone", "Close")
	if cfg.Identity {
		reserved.Add("ID")
		reserved.Add("Equal")
		reserved.Add("Less")
	}
	for _, m := range iface.Methods {
		if reserved.Contains(m.Name) {
			return nil, fmt.Errorf("%w: method %s.%s collides with the generated handle's %s",
				model.ErrSignature, iface.TypeName, m.Name, m.Name)
		}
	}

	overrides := cfg.OverrideSet()
	wait := cfg.WaitSet()
	fnf := cfg.FireAndForgetSet()

	p := &Protocol{
		Interface:    iface,
		Base:         base,
		IfaceName:    lowerFirst(base) + "Msg",
		MarkerMethod: "is" + upperFirst(base) + "Msg",
	}

	for _, m := range iface.Methods {
		waits := m.HasResults() || wait.Contains(m.Name)
		if fnf.Contains(m.Name) {
			if m.HasResults() {
				return nil, fmt.Errorf("%w: method %s.%s returns values and cannot be fire-and-forget",
					config.ErrConfig, iface.TypeName, m.Name)
			}
			waits = false
		}

		p.Variants = append(p.Variants, Variant{
			Method:     m,
			StructName: lowerFirst(base) + upperFirst(m.Name) + "Msg",
			Waits:      waits,
			Override:   overrides.Contains(m.Name),
		})
	}

	return p, nil
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
