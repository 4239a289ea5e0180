// Package regexinfunc detects regex compilation inside function bodies.
package regexinfunc

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects regexp.Compile/MustCompile calls outside package-level
// variable declarations.
var Analyzer = &analysis.Analyzer{
	Name:     "regexinfunc",
	Doc:      "detects regexp.Compile/MustCompile calls inside functions",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var regexpFuncs = map[string]bool{
	"Compile":          true,
	"MustCompile":      true,
	"CompilePOSIX":     true,
	"MustCompilePOSIX": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Body == nil {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !regexpFuncs[sel.Sel.Name] {
				return true
			}

			obj, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if !ok || obj.Pkg() == nil || obj.Pkg().Path() != "regexp" {
				return true
			}

			pass.Reportf(call.Pos(),
				"regexp.%s called in %s - compile once into a package-level var",
				sel.Sel.Name, fn.Name.Name)
			return true
		})
	})

	return nil, nil
}
