package model

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"strconv"

	"github.com/codewandler/actgen-go/core/ds"
)

// Parse reads sourcePath and builds the model for typeName.
func Parse(sourcePath, typeName string) (*Interface, error) {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return ParseSource(sourcePath, src, typeName)
}

// ParseSource builds the model for typeName from already-loaded source.
//
// The designated constructor is the single package-level function whose only
// result is the target type by value. Methods are collected in declaration
// order; that order is load-bearing (it fixes protocol variant order).
func ParseSource(filename string, src []byte, typeName string) (*Interface, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	iface := &Interface{
		Package:  f.Name.Name,
		TypeName: typeName,
		Imports:  make(map[string]string),
		funcs:    ds.NewSet[string](),
	}

	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		iface.Imports[name] = p
	}

	typeFound := false
	var ctors []Method
	var ctorNames []string

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != typeName {
					continue
				}
				if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
					return nil, fmt.Errorf("%w: generic target type %s is not supported", ErrSignature, typeName)
				}
				typeFound = true
			}

		case *ast.FuncDecl:
			if d.Recv == nil {
				iface.funcs.Add(d.Name.Name)
				if returnsByValue(d, typeName) {
					m, err := buildMethod(d, iface.Imports, ReceiverNone)
					if err != nil {
						return nil, err
					}
					ctors = append(ctors, m)
					ctorNames = append(ctorNames, d.Name.Name)
				}
				continue
			}

			kind, ok := receiverKind(d, typeName)
			if !ok {
				continue
			}
			m, err := buildMethod(d, iface.Imports, kind)
			if err != nil {
				return nil, err
			}
			iface.Methods = append(iface.Methods, m)
		}
	}

	if !typeFound {
		return nil, fmt.Errorf("%w: type %s not found in %s", ErrSignature, typeName, filename)
	}

	switch len(ctors) {
	case 0:
		return nil, fmt.Errorf("%w: no constructor for %s (need exactly one package-level func returning %s by value)", ErrSignature, typeName, typeName)
	case 1:
		iface.Constructor = ctors[0]
	default:
		return nil, fmt.Errorf("%w: multiple constructor candidates for %s: %v", ErrSignature, typeName, ctorNames)
	}

	return iface, nil
}

// returnsByValue reports whether fn's only result is typeName by value.
func returnsByValue(fn *ast.FuncDecl, typeName string) bool {
	res := fn.Type.Results
	if res == nil || len(res.List) != 1 || len(res.List[0].Names) > 0 {
		return false
	}
	id, ok := res.List[0].Type.(*ast.Ident)
	return ok && id.Name == typeName
}

// receiverKind classifies fn's receiver against typeName.
func receiverKind(fn *ast.FuncDecl, typeName string) (ReceiverKind, bool) {
	if len(fn.Recv.List) != 1 {
		return ReceiverNone, false
	}
	t := fn.Recv.List[0].Type
	if p, ok := t.(*ast.ParenExpr); ok {
		t = p.X
	}
	switch rt := t.(type) {
	case *ast.Ident:
		if rt.Name == typeName {
			return ReceiverValue, true
		}
	case *ast.StarExpr:
		if id, ok := rt.X.(*ast.Ident); ok && id.Name == typeName {
			return ReceiverPointer, true
		}
	}
	return ReceiverNone, false
}

func buildMethod(fn *ast.FuncDecl, imports map[string]string, kind ReceiverKind) (Method, error) {
	m := Method{
		Name:     fn.Name.Name,
		Receiver: kind,
	}

	if fn.Type.Params != nil {
		for fi, field := range fn.Type.Params.List {
			typ := field.Type

			if ell, ok := typ.(*ast.Ellipsis); ok {
				m.Variadic = true
				typ = ell.Elt
			}

			// A leading context.Context is the suspension marker, not payload.
			if fi == 0 && len(field.Names) <= 1 && isContext(typ, imports) {
				m.TakesContext = true
				continue
			}

			if err := checkSupported(typ, fn.Name.Name); err != nil {
				return Method{}, err
			}

			if len(field.Names) == 0 {
				m.Params = append(m.Params, Param{Name: fmt.Sprintf("arg%d", len(m.Params)), Type: typ})
				continue
			}
			for _, name := range field.Names {
				n := name.Name
				if n == "_" {
					n = fmt.Sprintf("arg%d", len(m.Params))
				}
				m.Params = append(m.Params, Param{Name: n, Type: typ})
			}
		}
	}

	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			if err := checkSupported(field.Type, fn.Name.Name); err != nil {
				return Method{}, err
			}
			n := max(len(field.Names), 1)
			for range n {
				m.Results = append(m.Results, Param{Type: field.Type})
			}
		}
	}

	return m, nil
}

// isContext reports whether e denotes context.Context, resolving the
// qualifier through the file's import table.
func isContext(e ast.Expr, imports map[string]string) bool {
	sel, ok := e.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Context" {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return imports[id.Name] == "context"
}

// checkSupported rejects type shapes the emitter cannot re-render into a
// message variant, so generation fails here instead of producing source
// that does not compile.
func checkSupported(e ast.Expr, method string) error {
	switch t := e.(type) {
	case *ast.Ident, *ast.SelectorExpr:
		return nil
	case *ast.StarExpr:
		return checkSupported(t.X, method)
	case *ast.ParenExpr:
		return checkSupported(t.X, method)
	case *ast.ArrayType:
		return checkSupported(t.Elt, method)
	case *ast.MapType:
		if err := checkSupported(t.Key, method); err != nil {
			return err
		}
		return checkSupported(t.Value, method)
	case *ast.ChanType:
		return checkSupported(t.Value, method)
	case *ast.Ellipsis:
		return checkSupported(t.Elt, method)
	case *ast.IndexExpr:
		if err := checkSupported(t.X, method); err != nil {
			return err
		}
		return checkSupported(t.Index, method)
	case *ast.IndexListExpr:
		if err := checkSupported(t.X, method); err != nil {
			return err
		}
		for _, idx := range t.Indices {
			if err := checkSupported(idx, method); err != nil {
				return err
			}
		}
		return nil
	case *ast.FuncType:
		if t.Params != nil {
			for _, f := range t.Params.List {
				if err := checkSupported(f.Type, method); err != nil {
					return err
				}
			}
		}
		if t.Results != nil {
			for _, f := range t.Results.List {
				if err := checkSupported(f.Type, method); err != nil {
					return err
				}
			}
		}
		return nil
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return nil
		}
		return fmt.Errorf("%w: method %s uses an inline interface type", ErrSignature, method)
	case *ast.StructType:
		return fmt.Errorf("%w: method %s uses an inline struct type", ErrSignature, method)
	default:
		return fmt.Errorf("%w: method %s uses an unsupported type shape (%T)", ErrSignature, method, e)
	}
}
