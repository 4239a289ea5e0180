// Package ctxbackground detects fresh root contexts created below main.
package ctxbackground

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports context.Background and context.TODO outside package main
// and tests. Library code takes the caller's context.
var Analyzer = &analysis.Analyzer{
	Name:     "ctxbackground",
	Doc:      "detects context.Background/TODO outside package main and tests",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() == "main" {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		if sel.Sel.Name != "Background" && sel.Sel.Name != "TODO" {
			return
		}

		obj, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || obj.Pkg() == nil || obj.Pkg().Path() != "context" {
			return
		}

		filename := pass.Fset.Position(call.Pos()).Filename
		if strings.HasSuffix(filename, "_test.go") {
			return
		}

		pass.Reportf(call.Pos(),
			"context.%s outside main - accept a context.Context from the caller",
			sel.Sel.Name)
	})

	return nil, nil
}
