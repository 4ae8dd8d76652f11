// Package gen emits the generated actor file for one target type: the
// message protocol, the handle with its proxy methods, the constructor and
// the dispatcher loop. Emission is driven entirely by the protocol built in
// core/protocol; gen adds no policy of its own.
package gen

import (
	"bytes"
	"fmt"
	"go/ast"

	"github.com/dave/jennifer/jen"

	"github.com/codewandler/actgen-go/core/config"
	"github.com/codewandler/actgen-go/core/model"
	"github.com/codewandler/actgen-go/core/protocol"
)

// actorPkg is the runtime package every generated file depends on.
const actorPkg = "github.com/codewandler/actgen-go/core/actor"

type generator struct {
	p    *protocol.Protocol
	cfg  config.Config
	n    names
	conv typeConv
}

// Generate renders the complete actor file for the given protocol. fp is
// the output fingerprint recorded in the file header; the CLI uses it to
// skip regeneration when neither the source nor the options changed.
func Generate(p *protocol.Protocol, cfg config.Config, fp string) ([]byte, error) {
	g := &generator{
		p:    p,
		cfg:  cfg,
		n:    newNames(p.Base),
		conv: typeConv{imports: p.Interface.Imports},
	}

	f := jen.NewFile(p.Interface.Package)
	f.HeaderComment("Code generated by actgen. DO NOT EDIT.")
	f.HeaderComment("")
	f.HeaderComment("source: " + cfg.Source)
	f.HeaderComment("type: " + p.Interface.TypeName)
	f.HeaderComment("fingerprint: " + fp)
	f.ImportName(actorPkg, "actor")
	for qual, path := range p.Interface.Imports {
		f.ImportName(path, qual)
	}

	if err := g.emitProtocol(f); err != nil {
		return nil, fmt.Errorf("emit protocol for %s: %w", p.Interface.TypeName, err)
	}
	if p.HasOverrides() {
		if err := g.emitHooks(f); err != nil {
			return nil, fmt.Errorf("emit hooks for %s: %w", p.Interface.TypeName, err)
		}
	}
	if err := g.emitHandle(f); err != nil {
		return nil, fmt.Errorf("emit handle for %s: %w", p.Interface.TypeName, err)
	}
	if err := g.emitDispatcher(f); err != nil {
		return nil, fmt.Errorf("emit dispatcher for %s: %w", p.Interface.TypeName, err)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.Interface.TypeName, err)
	}
	return buf.Bytes(), nil
}

// emitProtocol writes the marker interface and one variant struct per
// method, plus the result carrier for methods returning multiple values.
func (g *generator) emitProtocol(f *jen.File) error {
	f.Commentf("%s is the message protocol for %s: one variant per method, in declaration order.",
		g.p.IfaceName, g.p.Interface.TypeName)
	f.Type().Id(g.p.IfaceName).Interface(
		jen.Id(g.p.MarkerMethod).Params(),
	)

	for _, v := range g.p.Variants {
		fields, err := g.msgFields(v)
		if err != nil {
			return err
		}
		f.Type().Id(v.StructName).Struct(fields...)
		f.Func().Params(jen.Op("*").Id(v.StructName)).Id(g.p.MarkerMethod).Params().Block()

		if len(v.Method.Results) > 1 {
			resFields := make([]jen.Code, 0, len(v.Method.Results))
			for i, r := range v.Method.Results {
				typ, err := g.conv.code(r.Type)
				if err != nil {
					return err
				}
				resFields = append(resFields, jen.Id(fmt.Sprintf("r%d", i)).Add(typ))
			}
			f.Type().Id(g.n.resultStruct(v.Method.Name)).Struct(resFields...)
		}
	}
	return nil
}

// msgFields builds the variant struct's fields: the forwarded context, the
// method parameters (variadic collected into a slice) and the reply slot
// for waiting variants.
func (g *generator) msgFields(v protocol.Variant) ([]jen.Code, error) {
	m := v.Method
	var fields []jen.Code
	if m.TakesContext {
		fields = append(fields, jen.Id("ctx").Qual("context", "Context"))
	}
	for i, p := range m.Params {
		typ, err := g.paramType(m, i)
		if err != nil {
			return nil, err
		}
		if m.Variadic && i == len(m.Params)-1 {
			typ = jen.Index().Add(typ)
		}
		fields = append(fields, jen.Id(fieldName(p.Name)).Add(typ))
	}
	if v.Waits {
		reply, err := g.replyType(v)
		if err != nil {
			return nil, err
		}
		fields = append(fields, jen.Id("reply").Op("*").Qual(actorPkg, "Slot").Index(reply))
	}
	return fields, nil
}

// paramType renders parameter i's type, unwrapping the variadic ellipsis
// down to the element type.
func (g *generator) paramType(m model.Method, i int) (*jen.Statement, error) {
	t := m.Params[i].Type
	if ell, ok := t.(*ast.Ellipsis); ok {
		t = ell.Elt
	}
	return g.conv.code(t)
}

// replyType is the Slot element type: the lone result's type, the result
// carrier for multi-result methods, or struct{} for forced-wait unit
// methods.
func (g *generator) replyType(v protocol.Variant) (*jen.Statement, error) {
	switch len(v.Method.Results) {
	case 0:
		return jen.Struct(), nil
	case 1:
		return g.conv.code(v.Method.Results[0].Type)
	default:
		return jen.Id(g.n.resultStruct(v.Method.Name)), nil
	}
}

// emitHooks writes the hooks struct: one function field per overridden
// method, receiving exclusive access to the owned object in place of the
// real method body.
func (g *generator) emitHooks(f *jen.File) error {
	f.Commentf("%s supplies replacement bodies for overridden methods. Every", g.n.hooks)
	f.Commentf("field must be non-nil; %s rejects a partial set.", g.n.ctor)

	var fields []jen.Code
	for _, v := range g.p.Variants {
		if !v.Override {
			continue
		}
		sig, err := g.hookSignature(v.Method)
		if err != nil {
			return err
		}
		fields = append(fields, jen.Id(v.Method.Name).Add(sig))
	}
	f.Type().Id(g.n.hooks).Struct(fields...)
	return nil
}

// hookSignature renders func(obj *T, [ctx,] params...) (results...).
func (g *generator) hookSignature(m model.Method) (*jen.Statement, error) {
	params := []jen.Code{jen.Id("obj").Op("*").Id(g.p.Interface.TypeName)}
	if m.TakesContext {
		params = append(params, jen.Id("ctx").Qual("context", "Context"))
	}
	for _, p := range m.Params {
		typ, err := g.conv.code(p.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, jen.Id(fieldName(p.Name)).Add(typ))
	}

	sig := jen.Func().Params(params...)
	switch len(m.Results) {
	case 0:
	case 1:
		typ, err := g.conv.code(m.Results[0].Type)
		if err != nil {
			return nil, err
		}
		sig = sig.Add(typ)
	default:
		results := make([]jen.Code, 0, len(m.Results))
		for _, r := range m.Results {
			typ, err := g.conv.code(r.Type)
			if err != nil {
				return nil, err
			}
			results = append(results, typ)
		}
		sig = sig.Params(results...)
	}
	return sig, nil
}
