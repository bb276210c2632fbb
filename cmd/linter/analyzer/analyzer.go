// Package analyzer reports calls that would take the service down from
// library code and random sources that make short identifiers guessable.
package analyzer

import (
	"go/ast"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "shortlinkcheck"
	analyzerDoc  = "reports panic, log.Fatal and os.Exit outside func main of package main, and imports of math/rand"
)

var insecureRandPackages = map[string]bool{
	"math/rand":    true,
	"math/rand/v2": true,
}

// Analyzer checks for forbidden calls and insecure random imports.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.ImportSpec)(nil),
		(*ast.CallExpr)(nil),
	}

	insp.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		switch n := node.(type) {
		case *ast.ImportSpec:
			checkImport(pass, n)
		case *ast.CallExpr:
			if !inMain(pass, stack) {
				checkCall(pass, n)
			}
		}
		return true
	})

	return nil, nil
}

func checkImport(pass *analysis.Pass, spec *ast.ImportSpec) {
	path, err := strconv.Unquote(spec.Path.Value)
	if err != nil || !insecureRandPackages[path] {
		return
	}

	if strings.HasSuffix(pass.Fset.Position(spec.Pos()).Filename, "_test.go") {
		return
	}

	pass.Reportf(spec.Pos(), "%s is forbidden, use crypto/rand", path)
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr) {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		if _, builtin := pass.TypesInfo.Uses[fn].(*types.Builtin); builtin && fn.Name == "panic" {
			pass.Reportf(call.Pos(), "panic is forbidden outside main")
		}
	case *ast.SelectorExpr:
		ident, ok := fn.X.(*ast.Ident)
		if !ok {
			return
		}

		pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
		if !ok {
			return
		}

		switch path := pkgName.Imported().Path(); {
		case path == "log" && strings.HasPrefix(fn.Sel.Name, "Fatal"):
			pass.Reportf(call.Pos(), "log.%s is forbidden outside main", fn.Sel.Name)
		case path == "os" && fn.Sel.Name == "Exit":
			pass.Reportf(call.Pos(), "os.Exit is forbidden outside main")
		}
	}
}

// inMain reports whether the innermost function declaration on the stack
// is func main of package main.
func inMain(pass *analysis.Pass, stack []ast.Node) bool {
	if pass.Pkg.Name() != "main" {
		return false
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if decl, ok := stack[i].(*ast.FuncDecl); ok {
			return decl.Recv == nil && decl.Name.Name == "main"
		}
	}
	return false
}
