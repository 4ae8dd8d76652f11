package gen

import (
	"fmt"
	"go/ast"

	"github.com/dave/jennifer/jen"
)

// typeConv re-renders type expressions from the parsed source file as
// jennifer code, resolving package qualifiers through the file's import
// table so the emitted file declares exactly the imports it uses.
type typeConv struct {
	imports map[string]string // qualifier -> import path
}

func (tc typeConv) code(e ast.Expr) (*jen.Statement, error) {
	switch t := e.(type) {
	case *ast.Ident:
		return jen.Id(t.Name), nil

	case *ast.SelectorExpr:
		id, ok := t.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported qualified type %T", t.X)
		}
		path, ok := tc.imports[id.Name]
		if !ok {
			return nil, fmt.Errorf("unknown package qualifier %q", id.Name)
		}
		return jen.Qual(path, t.Sel.Name), nil

	case *ast.StarExpr:
		inner, err := tc.code(t.X)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(inner), nil

	case *ast.ParenExpr:
		inner, err := tc.code(t.X)
		if err != nil {
			return nil, err
		}
		return jen.Parens(inner), nil

	case *ast.ArrayType:
		elt, err := tc.code(t.Elt)
		if err != nil {
			return nil, err
		}
		if t.Len == nil {
			return jen.Index().Add(elt), nil
		}
		length, err := tc.code(t.Len)
		if err != nil {
			return nil, err
		}
		return jen.Index(length).Add(elt), nil

	case *ast.BasicLit:
		// array lengths
		return jen.Id(t.Value), nil

	case *ast.MapType:
		key, err := tc.code(t.Key)
		if err != nil {
			return nil, err
		}
		val, err := tc.code(t.Value)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(val), nil

	case *ast.ChanType:
		elt, err := tc.code(t.Value)
		if err != nil {
			return nil, err
		}
		switch {
		case t.Dir == ast.RECV:
			return jen.Op("<-").Chan().Add(elt), nil
		case t.Dir == ast.SEND:
			return jen.Chan().Op("<-").Add(elt), nil
		default:
			return jen.Chan().Add(elt), nil
		}

	case *ast.Ellipsis:
		elt, err := tc.code(t.Elt)
		if err != nil {
			return nil, err
		}
		return jen.Op("...").Add(elt), nil

	case *ast.FuncType:
		params, err := tc.fieldList(t.Params)
		if err != nil {
			return nil, err
		}
		s := jen.Func().Params(params...)
		if t.Results != nil {
			results, err := tc.fieldList(t.Results)
			if err != nil {
				return nil, err
			}
			s = s.Params(results...)
		}
		return s, nil

	case *ast.IndexExpr:
		x, err := tc.code(t.X)
		if err != nil {
			return nil, err
		}
		idx, err := tc.code(t.Index)
		if err != nil {
			return nil, err
		}
		return x.Index(idx), nil

	case *ast.IndexListExpr:
		x, err := tc.code(t.X)
		if err != nil {
			return nil, err
		}
		indices := make([]jen.Code, 0, len(t.Indices))
		for _, i := range t.Indices {
			c, err := tc.code(i)
			if err != nil {
				return nil, err
			}
			indices = append(indices, c)
		}
		return x.Index(jen.List(indices...)), nil

	case *ast.InterfaceType:
		// the model only lets empty interfaces through
		return jen.Any(), nil

	default:
		return nil, fmt.Errorf("unsupported type shape %T", e)
	}
}

func (tc typeConv) fieldList(fl *ast.FieldList) ([]jen.Code, error) {
	if fl == nil {
		return nil, nil
	}
	var out []jen.Code
	for _, f := range fl.List {
		typ, err := tc.code(f.Type)
		if err != nil {
			return nil, err
		}
		if len(f.Names) == 0 {
			out = append(out, typ)
			continue
		}
		for _, n := range f.Names {
			out = append(out, jen.Id(n.Name).Add(typ))
		}
	}
	return out, nil
}
