//go:build !release

package assertion

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
)

// unknownCondition stands in when the source of a check is unavailable
const unknownCondition = "<condition>"

// conditionText returns the source of the first argument of the Check
// call covering line in file.
func conditionText(file string, line int) string {
	if file == "" || line <= 0 {
		return unknownCondition
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, 0)
	if err != nil {
		return unknownCondition
	}

	var cond ast.Expr
	ast.Inspect(f, func(n ast.Node) bool {
		if cond != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if fset.Position(call.Pos()).Line > line || fset.Position(call.End()).Line < line {
			return true
		}
		if isCheckCall(call) && len(call.Args) > 0 {
			cond = call.Args[0]
			return false
		}
		return true
	})
	if cond == nil {
		return unknownCondition
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, cond); err != nil {
		return unknownCondition
	}
	return buf.String()
}

func isCheckCall(call *ast.CallExpr) bool {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return fn.Name == "Check"
	case *ast.SelectorExpr:
		return fn.Sel.Name == "Check"
	}
	return false
}
