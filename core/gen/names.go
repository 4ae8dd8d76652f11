package gen

import (
	"unicode"
	"unicode/utf8"
)

// names holds every identifier derived from the protocol's base name. All
// derivations live here so the handle and dispatcher emitters cannot drift
// apart on naming.
type names struct {
	base       string
	handle     string // CounterHandle
	hooks      string // CounterHooks
	ctor       string // NewCounterHandle
	dispatcher string // runCounterDispatcher
}

func newNames(base string) names {
	return names{
		base:       base,
		handle:     base + "Handle",
		hooks:      base + "Hooks",
		ctor:       "New" + base + "Handle",
		dispatcher: "run" + base + "Dispatcher",
	}
}

// resultStruct names the per-method result carrier used when a method
// returns more than one value, e.g. counterAddAllResult.
func (n names) resultStruct(method string) string {
	return lowerFirst(n.base) + upperFirst(method) + "Result"
}

// fieldName maps a parameter name to its message-struct field. The ctx and
// reply fields are reserved for the framework.
func fieldName(name string) string {
	switch name {
	case "ctx", "reply":
		return name + "_"
	}
	return name
}

// localName maps a parameter name to the local identifier used in emitted
// bodies, stepping around the identifiers the generated code uses itself.
func localName(name string) string {
	switch name {
	case "h", "m", "obj", "mbox", "tx", "opt", "opts", "hooks", "reply", "res", "err", "werr":
		return name + "_"
	}
	return name
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
