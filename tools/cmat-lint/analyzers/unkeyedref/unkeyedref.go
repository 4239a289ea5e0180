// Package unkeyedref detects positional ResourceRef literals.
package unkeyedref

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports ResourceRef composite literals without field keys.
// Archive, record and frame are all ints and easy to transpose.
var Analyzer = &analysis.Analyzer{
	Name:     "unkeyedref",
	Doc:      "detects unkeyed ResourceRef literals; use field keys or entities.Ref",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

const refTypeName = "ResourceRef"

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CompositeLit)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		lit := n.(*ast.CompositeLit)
		if len(lit.Elts) == 0 {
			return
		}
		if _, keyed := lit.Elts[0].(*ast.KeyValueExpr); keyed {
			return
		}

		named, ok := pass.TypesInfo.TypeOf(lit).(*types.Named)
		if !ok || named.Obj().Name() != refTypeName {
			return
		}

		pass.Reportf(lit.Pos(), "unkeyed %s literal - use field keys or entities.Ref", refTypeName)
	})

	return nil, nil
}
