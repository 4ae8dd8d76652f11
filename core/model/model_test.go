package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const counterSrc = `package demo

import (
	"context"
	"time"
)

type Counter struct {
	value int
}

func NewCounter(value int) Counter {
	return Counter{value: value}
}

func (c *Counter) Increment() {
	c.value++
}

func (c *Counter) AddNumber(n int) int {
	c.value += n
	return c.value
}

func (c Counter) GetValue() int {
	return c.value
}

func (c *Counter) WaitUntil(ctx context.Context, deadline time.Time) error {
	return nil
}

func (c *Counter) AddAll(ns ...int) (int, error) {
	for _, n := range ns {
		c.value += n
	}
	return c.value, nil
}

func helper() int { return 0 }
`

func parseCounter(t *testing.T) *Interface {
	t.Helper()
	iface, err := ParseSource("counter.go", []byte(counterSrc), "Counter")
	require.NoError(t, err)
	return iface
}

func TestParseSource_DeclarationOrder(t *testing.T) {
	iface := parseCounter(t)

	require.Equal(t, "demo", iface.Package)
	require.Equal(t, "NewCounter", iface.Constructor.Name)
	require.Equal(t,
		[]string{"Increment", "AddNumber", "GetValue", "WaitUntil", "AddAll"},
		iface.MethodNames().Values(),
	)
}

func TestParseSource_ReceiverKinds(t *testing.T) {
	iface := parseCounter(t)

	inc, ok := iface.Method("Increment")
	require.True(t, ok)
	require.Equal(t, ReceiverPointer, inc.Receiver)
	require.False(t, inc.HasResults())

	get, ok := iface.Method("GetValue")
	require.True(t, ok)
	require.Equal(t, ReceiverValue, get.Receiver)
	require.True(t, get.HasResults())
	require.False(t, get.OwnError())
}

func TestParseSource_ContextIsSuspensionMarkerNotPayload(t *testing.T) {
	iface := parseCounter(t)

	wu, ok := iface.Method("WaitUntil")
	require.True(t, ok)
	require.True(t, wu.TakesContext)
	require.Len(t, wu.Params, 1)
	require.Equal(t, "deadline", wu.Params[0].Name)
	require.True(t, wu.OwnError())
}

func TestParseSource_Variadic(t *testing.T) {
	iface := parseCounter(t)

	aa, ok := iface.Method("AddAll")
	require.True(t, ok)
	require.True(t, aa.Variadic)
	require.Len(t, aa.Params, 1)
	require.Len(t, aa.Results, 2)
	require.True(t, aa.OwnError())
}

func TestParseSource_ImportsRecorded(t *testing.T) {
	iface := parseCounter(t)
	require.Equal(t, "context", iface.Imports["context"])
	require.Equal(t, "time", iface.Imports["time"])
}

func TestParseSource_NoConstructor(t *testing.T) {
	src := `package demo

type T struct{}

func (t *T) Do() {}
`
	_, err := ParseSource("t.go", []byte(src), "T")
	require.ErrorIs(t, err, ErrSignature)
	require.ErrorContains(t, err, "no constructor")
}

func TestParseSource_MultipleConstructors(t *testing.T) {
	src := `package demo

type T struct{}

func NewT() T { return T{} }
func MakeT() T { return T{} }
`
	_, err := ParseSource("t.go", []byte(src), "T")
	require.ErrorIs(t, err, ErrSignature)
	require.ErrorContains(t, err, "multiple constructor candidates")
}

func TestParseSource_PointerResultIsNotConstructor(t *testing.T) {
	src := `package demo

type T struct{}

func NewT() *T { return &T{} }
`
	_, err := ParseSource("t.go", []byte(src), "T")
	require.ErrorIs(t, err, ErrSignature)
}

func TestParseSource_TypeNotFound(t *testing.T) {
	_, err := ParseSource("t.go", []byte("package demo\n"), "Missing")
	require.ErrorIs(t, err, ErrSignature)
}

func TestParseSource_GenericTargetRejected(t *testing.T) {
	src := `package demo

type Box[T any] struct{ v T }

func NewBox[T any]() Box[T] { return Box[T]{} }
`
	_, err := ParseSource("t.go", []byte(src), "Box")
	require.ErrorIs(t, err, ErrSignature)
}

func TestParseSource_InlineStructRejected(t *testing.T) {
	src := `package demo

type T struct{}

func NewT() T { return T{} }
func (t *T) Do(v struct{ X int }) {}
`
	_, err := ParseSource("t.go", []byte(src), "T")
	require.ErrorIs(t, err, ErrSignature)
	require.ErrorContains(t, err, "inline struct")
}

func TestSelect_ReordersAndRestricts(t *testing.T) {
	iface := parseCounter(t)
	require.NoError(t, iface.Select([]string{"GetValue", "Increment"}))
	require.Equal(t, []string{"GetValue", "Increment"}, iface.MethodNames().Values())
}

func TestSelect_ReceiverlessOperationRejected(t *testing.T) {
	iface := parseCounter(t)
	err := iface.Select([]string{"Increment", "helper"})
	require.ErrorIs(t, err, ErrSignature)
	require.ErrorContains(t, err, "no receiver")
}

func TestSelect_UnknownOperationRejected(t *testing.T) {
	iface := parseCounter(t)
	require.ErrorIs(t, iface.Select([]string{"Nope"}), ErrSignature)
}
