// Package model builds the canonical signature model of a target type: its
// designated constructor and its operations, classified by receiver kind,
// in declaration order. The model is the single input every later
// generation stage (protocol derivation, emission) works from.
package model

import (
	"errors"
	"fmt"
	"go/ast"

	"github.com/codewandler/actgen-go/core/ds"
)

// ErrSignature is wrapped by every signature-shape rejection. Generation
// aborts on it; no output is written.
var ErrSignature = errors.New("invalid signature")

// ReceiverKind classifies how an operation accesses the target instance.
type ReceiverKind int

const (
	// ReceiverNone marks package-level functions. Only the designated
	// constructor may lack a receiver.
	ReceiverNone ReceiverKind = iota
	// ReceiverValue is a value receiver: shared-immutable access.
	ReceiverValue
	// ReceiverPointer is a pointer receiver: shared-mutable access.
	ReceiverPointer
)

func (k ReceiverKind) String() string {
	switch k {
	case ReceiverValue:
		return "value"
	case ReceiverPointer:
		return "pointer"
	default:
		return "none"
	}
}

// Param is one parameter or result of an operation. Type is the AST
// expression as written in the source file; the emitter re-renders it.
type Param struct {
	Name string
	Type ast.Expr
}

// Method is one operation of the target type.
type Method struct {
	Name     string
	Receiver ReceiverKind
	// Params excludes the leading context.Context, which is recorded in
	// TakesContext instead.
	Params  []Param
	Results []Param
	// TakesContext marks methods whose first parameter is a
	// context.Context: the proxy forwards the caller's context in the
	// message and respects it while awaiting the reply.
	TakesContext bool
	// Variadic marks methods whose last parameter is variadic. The message
	// variant carries it as a slice.
	Variadic bool
}

// HasResults reports whether the method returns anything, including a lone
// error.
func (m Method) HasResults() bool { return len(m.Results) > 0 }

// OwnError reports whether the method's last result is the builtin error
// type. The proxy merges framework errors into that position instead of
// appending a second error.
func (m Method) OwnError() bool {
	if len(m.Results) == 0 {
		return false
	}
	id, ok := m.Results[len(m.Results)-1].Type.(*ast.Ident)
	return ok && id.Name == "error"
}

// Interface is the canonical description of the target type.
type Interface struct {
	Package  string
	TypeName string
	// Constructor is the single package-level function returning the target
	// type by value.
	Constructor Method
	// Methods holds the non-constructor operations in declaration order.
	// That order fixes the message protocol's variant order.
	Methods []Method
	// Imports maps package qualifiers used in the source file to import
	// paths, so the emitter can qualify re-rendered types.
	Imports map[string]string

	// funcs records all package-level function names, used to reject
	// receiverless operations by name.
	funcs *ds.Set[string]
}

// MethodNames returns the operation names in declaration order.
func (i *Interface) MethodNames() *ds.Set[string] {
	s := ds.NewSet[string]()
	for _, m := range i.Methods {
		s.Add(m.Name)
	}
	return s
}

// Method looks up an operation by name.
func (i *Interface) Method(name string) (Method, bool) {
	for _, m := range i.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Select restricts and re-orders the operations to the given names, for
// configs that declare an explicit method list. A name that resolves to a
// package-level function is an operation without a receiver and is
// rejected, as is a name that resolves to nothing at all.
func (i *Interface) Select(names []string) error {
	selected := make([]Method, 0, len(names))
	for _, name := range names {
		m, ok := i.Method(name)
		if !ok {
			if i.funcs.Contains(name) {
				return fmt.Errorf("%w: operation %s.%s has no receiver", ErrSignature, i.TypeName, name)
			}
			return fmt.Errorf("%w: %s has no method %s", ErrSignature, i.TypeName, name)
		}
		selected = append(selected, m)
	}
	i.Methods = selected
	return nil
}
