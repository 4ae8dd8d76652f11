package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/codewandler/actgen-go/core/config"
	"github.com/codewandler/actgen-go/core/model"
	"github.com/codewandler/actgen-go/core/protocol"
)

// emitHandle writes the handle struct, its constructor, one proxy method
// per variant and the lifecycle methods.
func (g *generator) emitHandle(f *jen.File) error {
	typeName := g.p.Interface.TypeName

	f.Commentf("%s is a concurrency-safe proxy for %s. Every call is forwarded", g.n.handle, typeName)
	f.Commentf("as a message to the dispatcher goroutine owning the instance, so the")
	f.Commentf("handle is safe to share and to Clone across goroutines.")
	fields := []jen.Code{
		jen.Id("tx").Op("*").Qual(actorPkg, "Sender").Index(jen.Id(g.p.IfaceName)),
	}
	if g.cfg.Identity {
		fields = append(fields, jen.Id("id").Uint64())
	}
	f.Type().Id(g.n.handle).Struct(fields...)

	if err := g.emitConstructor(f); err != nil {
		return err
	}
	for _, v := range g.p.Variants {
		if err := g.emitProxy(f, v); err != nil {
			return err
		}
	}
	g.emitLifecycle(f)
	if g.cfg.Identity {
		g.emitIdentity(f)
	}
	return nil
}

func (g *generator) emitConstructor(f *jen.File) error {
	ctor := g.p.Interface.Constructor
	typeName := g.p.Interface.TypeName

	var params []jen.Code
	if g.p.HasOverrides() {
		params = append(params, jen.Id("hooks").Id(g.n.hooks))
	}
	ctorParams, err := g.methodParams(ctor)
	if err != nil {
		return err
	}
	params = append(params, ctorParams...)
	params = append(params, jen.Id("opts").Op("...").Qual(actorPkg, "Option"))

	var body []jen.Code
	for _, v := range g.p.Variants {
		if !v.Override {
			continue
		}
		body = append(body, jen.If(jen.Id("hooks").Dot(v.Method.Name).Op("==").Nil()).Block(
			jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
				jen.Lit(v.Method.Name+" hook: %w"), jen.Qual(actorPkg, "ErrNilHook"),
			)),
		))
	}

	// resolve options, thread configs defaulting to the pinned backend
	optsExpr := jen.Id("opts").Op("...")
	if g.cfg.Backend == config.BackendThread {
		optsExpr = jen.Append(
			jen.Index().Qual(actorPkg, "Option").Values(
				jen.Qual(actorPkg, "WithBackend").Call(jen.Qual(actorPkg, "Thread").Call()),
			),
			jen.Id("opts").Op("..."),
		).Op("...")
	}
	body = append(body,
		jen.Id("opt").Op(":=").Qual(actorPkg, "NewOptions").Call(optsExpr),
		jen.Id("obj").Op(":=").Id(ctor.Name).Call(g.callArgsLocal(ctor)...),
		jen.Id("mbox").Op(":=").Qual(actorPkg, "NewMailbox").Index(jen.Id(g.p.IfaceName)).Call(jen.Lit(g.cfg.Capacity)),
		jen.Id("tx").Op(":=").Qual(actorPkg, "NewSender").Call(jen.Id("mbox")),
	)

	dispatchArgs := []jen.Code{jen.Op("&").Id("obj"), jen.Id("mbox")}
	if g.p.HasOverrides() {
		dispatchArgs = append(dispatchArgs, jen.Id("hooks"))
	}
	dispatchArgs = append(dispatchArgs, jen.Id("opt"))

	body = append(body,
		jen.If(
			jen.Err().Op(":=").Id("opt").Dot("Backend").Dot("Spawn").Call(
				jen.Func().Params().Block(
					jen.Id(g.n.dispatcher).Call(dispatchArgs...),
				),
			),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Id("tx").Dot("Close").Call(),
			jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
				jen.Lit("spawn "+typeName+" dispatcher: %w"), jen.Err(),
			)),
		),
	)

	handleLit := jen.Dict{jen.Id("tx"): jen.Id("tx")}
	if g.cfg.Identity {
		handleLit[jen.Id("id")] = jen.Qual(actorPkg, "NextID").Call()
	}
	body = append(body, jen.Return(jen.Op("&").Id(g.n.handle).Values(handleLit), jen.Nil()))

	f.Commentf("%s constructs a %s via %s, spawns its dispatcher and", g.n.ctor, typeName, ctor.Name)
	f.Commentf("returns the first handle to it.")
	f.Func().Id(g.n.ctor).Params(params...).
		Params(jen.Op("*").Id(g.n.handle), jen.Error()).
		Block(body...)
	return nil
}

// methodParams renders a method's parameter list for a generated signature,
// including the forwarded context and the variadic marker.
func (g *generator) methodParams(m model.Method) ([]jen.Code, error) {
	var params []jen.Code
	if m.TakesContext {
		params = append(params, jen.Id("ctx").Qual("context", "Context"))
	}
	for i, p := range m.Params {
		typ, err := g.paramType(m, i)
		if err != nil {
			return nil, err
		}
		if m.Variadic && i == len(m.Params)-1 {
			typ = jen.Op("...").Add(typ)
		}
		params = append(params, jen.Id(localName(p.Name)).Add(typ))
	}
	return params, nil
}

// callArgsLocal forwards a generated signature's parameters to the real
// function, spreading the variadic tail.
func (g *generator) callArgsLocal(m model.Method) []jen.Code {
	var args []jen.Code
	if m.TakesContext {
		args = append(args, jen.Id("ctx"))
	}
	for i, p := range m.Params {
		a := jen.Id(localName(p.Name))
		if m.Variadic && i == len(m.Params)-1 {
			a = a.Op("...")
		}
		args = append(args, a)
	}
	return args
}

func (g *generator) emitProxy(f *jen.File, v protocol.Variant) error {
	m := v.Method

	params, err := g.methodParams(m)
	if err != nil {
		return err
	}

	msgLit := jen.Dict{}
	if m.TakesContext {
		msgLit[jen.Id("ctx")] = jen.Id("ctx")
	}
	for _, p := range m.Params {
		msgLit[jen.Id(fieldName(p.Name))] = jen.Id(localName(p.Name))
	}

	send := func(assign string) *jen.Statement {
		msg := jen.Op("&").Id(v.StructName).Values(msgLit)
		if m.TakesContext {
			return jen.Err().Op(assign).Id("h").Dot("tx").Dot("SendCtx").Call(jen.Id("ctx"), msg)
		}
		return jen.Err().Op(assign).Id("h").Dot("tx").Dot("Send").Call(msg)
	}

	recv := func() *jen.Statement { return jen.Id("h").Op("*").Id(g.n.handle) }

	if !v.Waits {
		f.Commentf("%s enqueues the call and returns without waiting for it to run.", m.Name)
		fn := f.Func().Params(recv()).Id(m.Name).Params(params...).Error()
		if m.TakesContext {
			fn.Block(jen.Return(jen.Id("h").Dot("tx").Dot("SendCtx").Call(
				jen.Id("ctx"), jen.Op("&").Id(v.StructName).Values(msgLit),
			)))
		} else {
			fn.Block(jen.Return(jen.Id("h").Dot("tx").Dot("Send").Call(
				jen.Op("&").Id(v.StructName).Values(msgLit),
			)))
		}
		return nil
	}

	msgLit[jen.Id("reply")] = jen.Id("reply")

	replyT, err := g.replyType(v)
	if err != nil {
		return err
	}

	ownErr := m.OwnError()
	valueResults := m.Results
	if ownErr {
		valueResults = valueResults[:len(valueResults)-1]
	}

	returns := make([]jen.Code, 0, len(valueResults)+1)
	for i, r := range valueResults {
		typ, err := g.conv.code(r.Type)
		if err != nil {
			return err
		}
		returns = append(returns, jen.Id(fmt.Sprintf("r%d", i)).Add(typ))
	}
	returns = append(returns, jen.Err().Error())

	wait := jen.Id("reply").Dot("Wait").Call()
	if m.TakesContext {
		wait = jen.Id("reply").Dot("WaitCtx").Call(jen.Id("ctx"))
	}

	body := []jen.Code{
		jen.Id("reply").Op(":=").Qual(actorPkg, "NewSlot").Index(replyT).Call(),
		jen.If(send("="), jen.Err().Op("!=").Nil()).Block(jen.Return()),
	}

	switch {
	case len(m.Results) == 0:
		// forced wait on a unit method
		body = append(body,
			jen.List(jen.Id("_"), jen.Err()).Op("=").Add(wait),
			jen.Return(),
		)

	case len(m.Results) == 1 && !ownErr:
		body = append(body, jen.Return(wait))

	case len(m.Results) == 1 && ownErr:
		body = append(body,
			jen.List(jen.Id("res"), jen.Id("werr")).Op(":=").Add(wait),
			jen.If(jen.Id("werr").Op("!=").Nil()).Block(jen.Return(jen.Id("werr"))),
			jen.Return(jen.Id("res")),
		)

	default:
		unpacked := make([]jen.Code, 0, len(m.Results))
		for i := range valueResults {
			unpacked = append(unpacked, jen.Id("res").Dot(fmt.Sprintf("r%d", i)))
		}
		if ownErr {
			unpacked = append(unpacked, jen.Id("res").Dot(fmt.Sprintf("r%d", len(m.Results)-1)))
		} else {
			unpacked = append(unpacked, jen.Nil())
		}
		body = append(body,
			jen.List(jen.Id("res"), jen.Id("werr")).Op(":=").Add(wait),
			jen.If(jen.Id("werr").Op("!=").Nil()).Block(
				jen.Err().Op("=").Id("werr"),
				jen.Return(),
			),
			jen.Return(unpacked...),
		)
	}

	f.Commentf("%s forwards the call to the dispatcher and waits for the reply.", m.Name)
	f.Func().Params(recv()).Id(m.Name).Params(params...).Params(returns...).Block(body...)
	return nil
}

func (g *generator) emitLifecycle(f *jen.File) {
	cloneLit := jen.Dict{jen.Id("tx"): jen.Id("h").Dot("tx").Dot("Clone").Call()}
	if g.cfg.Identity {
		cloneLit[jen.Id("id")] = jen.Qual(actorPkg, "NextID").Call()
	}
	f.Commentf("Clone returns an additional handle to the same running actor. The clone")
	f.Commentf("shares the mailbox and dispatcher; each handle is closed independently.")
	f.Func().Params(jen.Id("h").Op("*").Id(g.n.handle)).Id("Clone").Params().Op("*").Id(g.n.handle).Block(
		jen.Return(jen.Op("&").Id(g.n.handle).Values(cloneLit)),
	)

	f.Commentf("Close releases this handle. Once every handle is closed the dispatcher")
	f.Commentf("drains the remaining messages and stops. Close is idempotent.")
	f.Func().Params(jen.Id("h").Op("*").Id(g.n.handle)).Id("Close").Params().Block(
		jen.Id("h").Dot("tx").Dot("Close").Call(),
	)
}

func (g *generator) emitIdentity(f *jen.File) {
	h := jen.Id("h").Op("*").Id(g.n.handle)

	f.Commentf("ID returns the process-unique id claimed when this handle was created.")
	f.Commentf("Handles created later always carry larger ids.")
	f.Func().Params(h.Clone()).Id("ID").Params().Uint64().Block(
		jen.Return(jen.Id("h").Dot("id")),
	)

	f.Commentf("Equal reports whether both handles are the same handle, not merely")
	f.Commentf("handles to the same actor.")
	f.Func().Params(h.Clone()).Id("Equal").Params(jen.Id("other").Op("*").Id(g.n.handle)).Bool().Block(
		jen.Return(jen.Id("h").Dot("id").Op("==").Id("other").Dot("id")),
	)

	f.Commentf("Less orders handles by creation order.")
	f.Func().Params(h.Clone()).Id("Less").Params(jen.Id("other").Op("*").Id(g.n.handle)).Bool().Block(
		jen.Return(jen.Id("h").Dot("id").Op("<").Id("other").Dot("id")),
	)
}
