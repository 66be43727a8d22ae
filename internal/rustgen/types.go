package rustgen

import (
	"strings"

	"scriptrust/internal/ast"
)

// rustType maps a type annotation to its Rust spelling in value position.
func rustType(t ast.TypeNode) string {
	return mapType(t, false)
}

// rustParamType maps a type annotation in parameter position, where string
// becomes &str.
func rustParamType(t ast.TypeNode) string {
	return mapType(t, true)
}

func mapType(t ast.TypeNode, paramPos bool) string {
	switch t := t.(type) {
	case *ast.NamedType:
		switch t.Name {
		case "string":
			if paramPos {
				return "&str"
			}
			return "String"
		case "number":
			return "f64"
		case "boolean":
			return "bool"
		case "void":
			return "()"
		case "any":
			return "Box<dyn std::any::Any>"
		case "null", "undefined":
			return "()"
		default:
			return escapeIdent(t.Name)
		}
	case *ast.ArrayType:
		return "Vec<" + mapType(t.Elem, false) + ">"
	case *ast.GenericType:
		switch t.Name {
		case "Array":
			if len(t.Args) == 1 {
				return "Vec<" + mapType(t.Args[0], false) + ">"
			}
		case "Promise":
			// the awaited value type; async fns return it directly
			if len(t.Args) == 1 {
				return mapType(t.Args[0], false)
			}
			return "()"
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = mapType(a, false)
		}
		return escapeIdent(t.Name) + "<" + strings.Join(args, ", ") + ">"
	case *ast.UnionType:
		// Rust has no anonymous unions; keep the first member and note the rest.
		return mapType(t.Members[0], paramPos) + " /* scriptrust: union members dropped */"
	case *ast.FuncType:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = mapType(p, true)
		}
		return "impl Fn(" + strings.Join(params, ", ") + ") -> " + mapType(t.Return, false)
	}
	return "() /* scriptrust: unknown type */"
}

// zeroValue picks the default a struct field falls back to when the
// constructor never assigns it and the field has no initializer.
func zeroValue(t ast.TypeNode) string {
	switch t := t.(type) {
	case *ast.NamedType:
		switch t.Name {
		case "string":
			return "String::new()"
		case "number":
			return "0.0"
		case "boolean":
			return "false"
		}
	case *ast.ArrayType:
		return "Vec::new()"
	case *ast.GenericType:
		if t.Name == "Array" {
			return "Vec::new()"
		}
	}
	return "Default::default()"
}
