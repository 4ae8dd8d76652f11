package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/codewandler/actgen-go/core/protocol"
)

// emitDispatcher writes the dispatcher loop: the single goroutine that owns
// the instance, receives protocol messages in arrival order and executes
// them one at a time through the runtime's crash-contained dispatch
// helpers.
func (g *generator) emitDispatcher(f *jen.File) error {
	typeName := g.p.Interface.TypeName

	cases := make([]jen.Code, 0, len(g.p.Variants))
	needBind := false
	for _, v := range g.p.Variants {
		if v.Waits || v.Method.TakesContext || len(v.Method.Params) > 0 {
			needBind = true
		}
		arm, err := g.dispatchArm(v)
		if err != nil {
			return err
		}
		cases = append(cases, jen.Case(jen.Op("*").Id(v.StructName)).Block(arm))
	}

	var sw *jen.Statement
	if needBind {
		sw = jen.Switch(jen.Id("m").Op(":=").Id("msg").Assert(jen.Type())).Block(cases...)
	} else {
		sw = jen.Switch(jen.Id("msg").Assert(jen.Type())).Block(cases...)
	}

	params := []jen.Code{
		jen.Id("obj").Op("*").Id(typeName),
		jen.Id("mbox").Op("*").Qual(actorPkg, "Mailbox").Index(jen.Id(g.p.IfaceName)),
	}
	if g.p.HasOverrides() {
		params = append(params, jen.Id("hooks").Id(g.n.hooks))
	}
	params = append(params, jen.Id("opt").Qual(actorPkg, "Options"))

	f.Commentf("%s owns obj exclusively and serves messages in arrival order", g.n.dispatcher)
	f.Commentf("until every handle is closed and the mailbox is drained.")
	f.Func().Id(g.n.dispatcher).Params(params...).Block(
		jen.Defer().Qual(actorPkg, "Enter").Call(jen.Id("opt"), jen.Lit(typeName)).Call(),
		jen.For().Block(
			jen.List(jen.Id("msg"), jen.Id("ok")).Op(":=").Id("mbox").Dot("Receive").Call(),
			jen.If(jen.Op("!").Id("ok")).Block(jen.Return()),
			jen.Id("opt").Dot("Metrics").Dot("MailboxDepth").Call(jen.Lit(typeName)).
				Dot("Set").Call(jen.Float64().Call(jen.Id("mbox").Dot("Len").Call())),
			sw,
		),
	)
	return nil
}

// dispatchArm builds the statement executing one variant: a Dispatch call
// for fire-and-forget variants, a DispatchReply call delivering into the
// reply slot otherwise. Overridden variants invoke the hook with the owned
// object instead of the method itself.
func (g *generator) dispatchArm(v protocol.Variant) (jen.Code, error) {
	typeName := g.p.Interface.TypeName
	m := v.Method

	call := g.targetCall(v)

	if !v.Waits {
		return jen.Qual(actorPkg, "Dispatch").Call(
			jen.Id("opt"), jen.Lit(typeName), jen.Lit(m.Name),
			jen.Func().Params().Block(call),
		), nil
	}

	replyT, err := g.replyType(v)
	if err != nil {
		return nil, err
	}

	var body []jen.Code
	switch {
	case len(m.Results) == 0:
		// forced wait: run, then signal completion
		body = []jen.Code{call, jen.Return(jen.Struct().Values())}

	case len(m.Results) == 1:
		body = []jen.Code{jen.Return(call)}

	default:
		lhs := make([]jen.Code, 0, len(m.Results))
		lit := jen.Dict{}
		for i := range m.Results {
			name := fmt.Sprintf("r%d", i)
			lhs = append(lhs, jen.Id(name))
			lit[jen.Id(name)] = jen.Id(name)
		}
		body = []jen.Code{
			jen.List(lhs...).Op(":=").Add(call),
			jen.Return(jen.Id(g.n.resultStruct(m.Name)).Values(lit)),
		}
	}

	return jen.Qual(actorPkg, "DispatchReply").Call(
		jen.Id("opt"), jen.Lit(typeName), jen.Lit(m.Name),
		jen.Id("m").Dot("reply"),
		jen.Func().Params().Add(replyT).Block(body...),
	), nil
}

// targetCall renders the invocation a dispatch arm wraps: hook or method,
// with the message's payload spread back into arguments.
func (g *generator) targetCall(v protocol.Variant) *jen.Statement {
	m := v.Method

	var args []jen.Code
	if v.Override {
		args = append(args, jen.Id("obj"))
	}
	if m.TakesContext {
		args = append(args, jen.Id("m").Dot("ctx"))
	}
	for i, p := range m.Params {
		a := jen.Id("m").Dot(fieldName(p.Name))
		if m.Variadic && i == len(m.Params)-1 {
			a = a.Op("...")
		}
		args = append(args, a)
	}

	if v.Override {
		return jen.Id("hooks").Dot(m.Name).Call(args...)
	}
	return jen.Id("obj").Dot(m.Name).Call(args...)
}
