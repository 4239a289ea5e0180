// cmat-lint is a custom static analyzer for climate-materials conventions.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/climate-materials/tools/cmat-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
