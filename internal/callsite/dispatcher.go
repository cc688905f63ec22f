package callsite

import (
	"go/ast"

	"go.uber.org/zap"

	"github.com/sirkon/carefulnow/internal/report"
	"github.com/sirkon/carefulnow/internal/rules"
	"github.com/sirkon/carefulnow/internal/symbols"
)

// Resolver binds sites to declarations.
type Resolver interface {
	ResolveCall(call *ast.CallExpr) (*symbols.Declaration, symbols.Outcome)
	ResolveComposite(lit *ast.CompositeLit) (*symbols.Declaration, symbols.Outcome)
	ResolveFuncDecl(decl *ast.FuncDecl) (*symbols.Declaration, symbols.Outcome)
}

var _ Resolver = (*symbols.Resolver)(nil)

// Dispatcher routes sites through the rules of a catalog.
//
// One dispatcher serves one file. It keeps no state between sites, yet it is
// not meant to be shared: every worker gets its own along with its own sink.
type Dispatcher struct {
	catalog  *rules.Catalog
	resolver Resolver
	reporter *report.Reporter
	log      *zap.Logger
}

// NewDispatcher creates a dispatcher. A nil logger means no logging.
func NewDispatcher(
	catalog *rules.Catalog,
	resolver Resolver,
	reporter *report.Reporter,
	log *zap.Logger,
) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	return &Dispatcher{
		catalog:  catalog,
		resolver: resolver,
		reporter: reporter,
		log:      log,
	}
}

// Dispatch resolves the site and reports every hit of every rule subscribed
// to the site kind, in catalog order. Sites that cannot be resolved to a
// declared function, method or type are skipped silently.
func (d *Dispatcher) Dispatch(site Site) {
	decl, outcome := d.resolve(site)
	if outcome != symbols.Resolved || decl == nil {
		if ce := d.log.Check(zap.DebugLevel, "skip site"); ce != nil {
			ce.Write(
				zap.Stringer("kind", site.Kind()),
				zap.Stringer("outcome", outcome),
				zap.Int("pos", int(site.Node().Pos())),
			)
		}
		return
	}

	kind := site.Kind()
	for rule := range d.catalog.All() {
		if !rule.Subscribed(kind) {
			continue
		}

		for _, hit := range rule.Match(decl) {
			d.reporter.Report(rule, hit, site.Node())
		}
	}
}

func (d *Dispatcher) resolve(site Site) (*symbols.Declaration, symbols.Outcome) {
	switch s := site.(type) {
	case MethodCall:
		return d.resolver.ResolveCall(s.Call)
	case ConstructorCall:
		return d.resolver.ResolveComposite(s.Lit)
	case MethodDecl:
		return d.resolver.ResolveFuncDecl(s.Decl)
	default:
		return nil, symbols.Unresolved
	}
}
