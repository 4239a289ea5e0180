// Package reflectlookup detects field lookups by name through reflection.
package reflectlookup

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports reflect FieldByName and FieldByNameFunc calls. Material
// tables are keyed maps; categories are never resolved to struct fields.
var Analyzer = &analysis.Analyzer{
	Name:     "reflectlookup",
	Doc:      "detects reflect FieldByName/FieldByNameFunc calls",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var lookupMethods = map[string]bool{
	"FieldByName":     true,
	"FieldByNameFunc": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || !lookupMethods[sel.Sel.Name] {
			return
		}

		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "reflect" {
			return
		}

		pass.Reportf(call.Pos(),
			"reflect %s used for lookup - key the data by an explicit map instead",
			sel.Sel.Name)
	})

	return nil, nil
}
