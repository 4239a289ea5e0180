// Package analyzers provides all custom static analyzers for climate-materials.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/climate-materials/tools/cmat-lint/analyzers/ctxbackground"
	"github.com/ersonp/climate-materials/tools/cmat-lint/analyzers/reflectlookup"
	"github.com/ersonp/climate-materials/tools/cmat-lint/analyzers/regexinfunc"
	"github.com/ersonp/climate-materials/tools/cmat-lint/analyzers/unkeyedref"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		ctxbackground.Analyzer,
		reflectlookup.Analyzer,
		regexinfunc.Analyzer,
		unkeyedref.Analyzer,
	}
}
