// Package cascadecheck defines an analyzer keeping traced errors of
// github.com/vovanec/cascade from being silently lost.
//
// A traced error has a single owner, which the compiler cannot enforce.
// The analyzer reports two kinds of mistakes:
//
//   - calling a function that produces a traced error as a statement,
//     which drops the error together with its trace;
//   - referring to a variable after it was passed to a function that
//     moves its trace elsewhere, like cascade.Translate.
//
// Relay is not reported when used as a statement: it extends the trace
// of its argument in place.
//
// Moves are tracked within one statement list. A variable moved inside a
// nested block, such as the body of an if statement, is not followed into
// the statements after that block.
package cascadecheck

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const doc = `cascadecheck reports traced errors that are dropped or used after being moved`

const cascadePath = "github.com/vovanec/cascade"

var (
	builtinDiscard = []string{"New", "Lift", "Translate", "Map", "NewFunc", "RelayFunc", "TranslateFunc"}
	builtinConsume = []string{"Translate", "Map"}
)

// Analyzer checks cascade adapters plus the functions listed in the file
// given by the -config flag.
var Analyzer = &analysis.Analyzer{
	Name:     "cascadecheck",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runWithFlags,
}

var configPath string

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "YAML file listing extra discard and consume functions")
}

// NewAnalyzer returns an analyzer checking cascade adapters plus the functions in cfg.
func NewAnalyzer(cfg *Config) *analysis.Analyzer {
	return &analysis.Analyzer{
		Name:     "cascadecheck",
		Doc:      doc,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run:      newChecker(cfg).run,
	}
}

func runWithFlags(pass *analysis.Pass) (any, error) {
	var cfg *Config
	if configPath != "" {
		c, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	return newChecker(cfg).run(pass)
}

type checker struct {
	discard map[string]bool
	consume map[string]bool
}

func newChecker(cfg *Config) *checker {
	c := &checker{
		discard: make(map[string]bool),
		consume: make(map[string]bool),
	}
	for _, name := range builtinDiscard {
		c.discard[cascadePath+"."+name] = true
	}
	for _, name := range builtinConsume {
		c.consume[cascadePath+"."+name] = true
	}
	if cfg != nil {
		for _, name := range cfg.Discard {
			c.discard[name] = true
		}
		for _, name := range cfg.Consume {
			c.consume[name] = true
		}
	}
	return c
}

func (c *checker) run(pass *analysis.Pass) (any, error) {
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.ExprStmt)(nil),
		(*ast.BlockStmt)(nil),
		(*ast.CaseClause)(nil),
		(*ast.CommClause)(nil),
	}

	pector.Preorder(nodeFilter, func(node ast.Node) {
		switch n := node.(type) {
		case *ast.ExprStmt:
			c.checkDiscard(pass, n)
		case *ast.BlockStmt:
			c.checkMoves(pass, n.List)
		case *ast.CaseClause:
			c.checkMoves(pass, n.Body)
		case *ast.CommClause:
			c.checkMoves(pass, n.Body)
		}
	})

	return nil, nil
}

func (c *checker) checkDiscard(pass *analysis.Pass, stmt *ast.ExprStmt) {
	call, ok := ast.Unparen(stmt.X).(*ast.CallExpr)
	if !ok {
		return
	}
	fn := callee(pass.TypesInfo, call)
	if fn == nil || !c.discard[qualifiedName(fn)] {
		return
	}
	pass.Reportf(call.Pos(), "result of %s is discarded, the traced error is lost", displayName(fn))
}

// move records a variable handed over to a consuming call.
type move struct {
	v  *types.Var
	by *types.Func
}

// checkMoves walks a statement list in order. A variable consumed in one
// statement must not be referenced by the following ones until it is
// assigned again. Consuming calls inside nested blocks are checked when
// those blocks are visited.
func (c *checker) checkMoves(pass *analysis.Pass, stmts []ast.Stmt) {
	var moved []move

	for _, stmt := range stmts {
		moved = c.checkUses(pass, stmt, moved)

		as, _ := stmt.(*ast.AssignStmt)
		for _, m := range c.consumed(pass, stmt) {
			// c = cascade.Map(c, ...) hands c its new owner right away.
			if as != nil && assigns(pass.TypesInfo, as.Lhs, m.v) {
				continue
			}
			moved = append(moved, m)
		}
	}
}

// checkUses reports references to moved variables in stmt and returns
// the moves still in effect after it.
func (c *checker) checkUses(pass *analysis.Pass, stmt ast.Stmt, moved []move) []move {
	if len(moved) == 0 {
		return moved
	}

	var (
		reads    []ast.Node
		assigned []ast.Expr
	)
	if as, ok := stmt.(*ast.AssignStmt); ok {
		for _, rhs := range as.Rhs {
			reads = append(reads, rhs)
		}
		assigned = as.Lhs
	} else {
		reads = append(reads, stmt)
	}

	var kept []move
	for _, m := range moved {
		if id := firstUse(pass.TypesInfo, reads, m.v); id != nil {
			pass.Reportf(id.Pos(), "%s used after being moved by %s", id.Name, displayName(m.by))
			continue
		}
		if assigns(pass.TypesInfo, assigned, m.v) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// consumed returns the variables moved by consuming calls found directly
// in stmt, outside nested blocks and function literals.
func (c *checker) consumed(pass *analysis.Pass, stmt ast.Stmt) []move {
	var ret []move
	ast.Inspect(stmt, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BlockStmt, *ast.FuncLit, *ast.CaseClause, *ast.CommClause:
			return false
		case *ast.CallExpr:
			fn := callee(pass.TypesInfo, n)
			if fn == nil || !c.consume[qualifiedName(fn)] || len(n.Args) == 0 {
				return true
			}
			id, ok := ast.Unparen(n.Args[0]).(*ast.Ident)
			if !ok {
				return true
			}
			if v, ok := pass.TypesInfo.Uses[id].(*types.Var); ok {
				ret = append(ret, move{v: v, by: fn})
			}
		}
		return true
	})
	return ret
}

func firstUse(info *types.Info, nodes []ast.Node, v *types.Var) *ast.Ident {
	var found *ast.Ident
	for _, node := range nodes {
		ast.Inspect(node, func(n ast.Node) bool {
			if found != nil {
				return false
			}
			if id, ok := n.(*ast.Ident); ok && info.Uses[id] == v {
				found = id
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func assigns(info *types.Info, lhs []ast.Expr, v *types.Var) bool {
	for _, e := range lhs {
		id, ok := ast.Unparen(e).(*ast.Ident)
		if !ok {
			continue
		}
		if info.Uses[id] == v || info.Defs[id] == v {
			return true
		}
	}
	return false
}

// callee returns the package level function called by call, if any.
// Instantiated generic functions resolve to their generic origin.
func callee(info *types.Info, call *ast.CallExpr) *types.Func {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return nil
	}
	if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
		return nil
	}
	return fn.Origin()
}

func qualifiedName(fn *types.Func) string {
	return fn.Pkg().Path() + "." + fn.Name()
}

func displayName(fn *types.Func) string {
	return fn.Pkg().Name() + "." + fn.Name()
}
