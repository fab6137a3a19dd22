// Command cascadecheck runs the cascadecheck analyzer.
//
//	cascadecheck [-config cascadecheck.yaml] ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/vovanec/cascade/cascadecheck"
)

func main() {
	singlechecker.Main(cascadecheck.Analyzer)
}
