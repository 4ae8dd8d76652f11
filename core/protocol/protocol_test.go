package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/actgen-go/core/config"
	"github.com/codewandler/actgen-go/core/model"
)

const counterSrc = `package demo

type Counter struct {
	value int
}

func NewCounter(value int) Counter { return Counter{value: value} }

func (c *Counter) Increment()          { c.value++ }
func (c *Counter) AddNumber(n int) int { c.value += n; return c.value }
func (c Counter) GetValue() int        { return c.value }
func (c *Counter) Reset()              { c.value = 0 }
`

func build(t *testing.T, mutate func(*config.Config)) (*Protocol, error) {
	t.Helper()
	iface, err := model.ParseSource("counter.go", []byte(counterSrc), "Counter")
	require.NoError(t, err)

	cfg := config.Config{Type: "Counter", Source: "counter.go"}
	cfg.Normalize()
	if mutate != nil {
		mutate(&cfg)
	}
	return Build(iface, cfg)
}

func TestBuild_OneVariantPerMethodInDeclarationOrder(t *testing.T) {
	p, err := build(t, nil)
	require.NoError(t, err)

	require.Len(t, p.Variants, 4)
	var names []string
	for _, v := range p.Variants {
		names = append(names, v.Method.Name)
	}
	require.Equal(t, []string{"Increment", "AddNumber", "GetValue", "Reset"}, names)
}

func TestBuild_Naming(t *testing.T) {
	p, err := build(t, nil)
	require.NoError(t, err)

	require.Equal(t, "Counter", p.Base)
	require.Equal(t, "counterMsg", p.IfaceName)
	require.Equal(t, "isCounterMsg", p.MarkerMethod)
	require.Equal(t, "counterAddNumberMsg", p.Variants[1].StructName)
}

func TestBuild_NamingTemplate(t *testing.T) {
	p, err := build(t, func(c *config.Config) { c.Naming = "{{.Type}}Actor" })
	require.NoError(t, err)

	require.Equal(t, "CounterActor", p.Base)
	require.Equal(t, "counterActorMsg", p.IfaceName)
	require.Equal(t, "counterActorIncrementMsg", p.Variants[0].StructName)
}

func TestBuild_DefaultReplyPolicy(t *testing.T) {
	p, err := build(t, nil)
	require.NoError(t, err)

	// unit methods default to fire-and-forget, value methods wait
	require.False(t, p.Variants[0].Waits) // Increment
	require.True(t, p.Variants[1].Waits)  // AddNumber
	require.True(t, p.Variants[2].Waits)  // GetValue
	require.False(t, p.Variants[3].Waits) // Reset
}

func TestBuild_ForcedWait(t *testing.T) {
	p, err := build(t, func(c *config.Config) { c.Wait = []string{"Reset"} })
	require.NoError(t, err)
	require.True(t, p.Variants[3].Waits)
}

func TestBuild_ForcedFireAndForgetOnValueMethodRejected(t *testing.T) {
	_, err := build(t, func(c *config.Config) { c.FireAndForget = []string{"GetValue"} })
	require.ErrorIs(t, err, config.ErrConfig)
}

func TestBuild_OverrideMarksVariant(t *testing.T) {
	p, err := build(t, func(c *config.Config) { c.Overrides = []string{"GetValue"} })
	require.NoError(t, err)

	require.False(t, p.Variants[1].Override)
	require.True(t, p.Variants[2].Override)
	require.True(t, p.HasOverrides())
}

func TestBuild_OverrideTargetMustExist(t *testing.T) {
	_, err := build(t, func(c *config.Config) { c.Overrides = []string{"Missing"} })
	require.ErrorIs(t, err, config.ErrConfig)
	require.ErrorContains(t, err, "Missing")
}

const resourceSrc = `package demo

type Resource struct {
	open bool
}

func NewResource() Resource { return Resource{open: true} }

func (r *Resource) Close()   { r.open = false }
func (r *Resource) ID() int  { return 1 }
func (r Resource) Open() bool { return r.open }
`

func TestBuild_LifecycleNamesCannotBeMirrored(t *testing.T) {
	iface, err := model.ParseSource("resource.go", []byte(resourceSrc), "Resource")
	require.NoError(t, err)

	cfg := config.Config{Type: "Resource", Source: "resource.go"}
	cfg.Normalize()

	// Close always belongs to the handle
	_, err = Build(iface, cfg)
	require.ErrorIs(t, err, model.ErrSignature)
	require.ErrorContains(t, err, "Resource.Close")
}

func TestBuild_IdentityNamesReservedOnlyWithIdentity(t *testing.T) {
	src := `package demo

type Tagged struct{ n int }

func NewTagged() Tagged { return Tagged{} }

func (t Tagged) ID() int { return t.n }
`
	iface, err := model.ParseSource("tagged.go", []byte(src), "Tagged")
	require.NoError(t, err)

	cfg := config.Config{Type: "Tagged", Source: "tagged.go"}
	cfg.Normalize()
	p, err := Build(iface, cfg)
	require.NoError(t, err)
	require.Len(t, p.Variants, 1)

	cfg.Identity = true
	_, err = Build(iface, cfg)
	require.ErrorIs(t, err, model.ErrSignature)
	require.ErrorContains(t, err, "Tagged.ID")
}

func TestBuild_ExplicitMethodList(t *testing.T) {
	p, err := build(t, func(c *config.Config) { c.Methods = []string{"GetValue", "Increment"} })
	require.NoError(t, err)

	require.Len(t, p.Variants, 2)
	require.Equal(t, "GetValue", p.Variants[0].Method.Name)
	require.Equal(t, "Increment", p.Variants[1].Method.Name)
}

func TestBuild_ExplicitMethodListSignatureErrorsPropagate(t *testing.T) {
	_, err := build(t, func(c *config.Config) { c.Methods = []string{"NewCounter"} })
	require.ErrorIs(t, err, model.ErrSignature)
}
