package carefulnow

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/carefulnow/internal/annotation"
	"github.com/sirkon/carefulnow/internal/callsite"
	"github.com/sirkon/carefulnow/internal/report"
	"github.com/sirkon/carefulnow/internal/rules"
	"github.com/sirkon/carefulnow/internal/symbols"
)

const doc = `carefulnow reports calls that need attention

It reports calls of functions, methods and constructors whose declarations
are annotated with

	//annotation:com.annotations.CarefulNow

and calls of the platform logging API (v, d, i, w, e, wtf) which must go
through SywLog instead.`

// Analyzer is the main entry point for the linter. It uses the builtin rule catalog.
var Analyzer = New(rules.MustBuiltin())

// Result is what the analyzer leaves for drivers and dependent analyzers:
// diagnostics with their full rule identity, in reporting order.
type Result struct {
	Diagnostics []report.Diagnostic
}

// Option tunes an analyzer created with [New].
type Option func(*runner)

// WithLogger sets a logger for skipped sites, dropped diagnostics and timings.
func WithLogger(log *zap.Logger) Option {
	return func(r *runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithJobs limits the number of files of a package audited at once.
func WithJobs(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.jobs = n
		}
	}
}

// New creates an analyzer over the given rule catalog.
func New(catalog *rules.Catalog, opts ...Option) *analysis.Analyzer {
	r := &runner{
		catalog: catalog,
		log:     zap.NewNop(),
		jobs:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}

	return &analysis.Analyzer{
		Name:       "carefulnow",
		Doc:        doc,
		Requires:   []*analysis.Analyzer{inspect.Analyzer},
		FactTypes:  []analysis.Fact{new(annotation.Fact)},
		ResultType: reflect.TypeOf((*Result)(nil)),
		Run:        r.run,
	}
}

type runner struct {
	catalog *rules.Catalog
	log     *zap.Logger
	jobs    int
}

// fileSites are sites of a single file in the order of traversal.
type fileSites struct {
	name  string
	sites []callsite.Site
}

func (r *runner) run(pass *analysis.Pass) (any, error) {
	start := time.Now()
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	log := r.log.With(zap.String("package", pass.Pkg.Path()))

	resolver := r.resolver(pass)
	files := r.collect(pass, pector)

	diags, err := r.dispatch(pass.Fset, resolver, files, log)
	if err != nil {
		return nil, err
	}

	for _, d := range diags {
		pass.Report(analysis.Diagnostic{
			Pos:      d.Pos,
			End:      d.End,
			Category: d.Rule.ID,
			Message:  d.Message,
		})
	}

	log.Debug(
		"package audited",
		zap.Int("files", len(files)),
		zap.Int("diagnostics", len(diags)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{Diagnostics: diags}, nil
}

// resolver imports annotations of dependencies, exports annotations of the
// current package and builds a read-only resolver over both.
func (r *runner) resolver(pass *analysis.Pass) *symbols.Resolver {
	known := map[types.Object][]annotation.Annotation{}
	for _, f := range pass.AllObjectFacts() {
		fact, ok := f.Fact.(*annotation.Fact)
		if !ok {
			continue
		}

		known[f.Object] = fact.Annotations
	}

	for _, a := range symbols.Scan(pass.Files, pass.TypesInfo) {
		known[a.Object] = a.Annotations
		if !a.Local {
			pass.ExportObjectFact(a.Object, &annotation.Fact{Annotations: a.Annotations})
		}
	}

	return symbols.NewResolver(pass.TypesInfo, known)
}

// collect groups sites by files. Files keep the package order, sites keep
// the source order.
func (r *runner) collect(pass *analysis.Pass, pector *inspector.Inspector) []fileSites {
	index := make(map[*token.File]int, len(pass.Files))
	var files []fileSites
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.FileStart)
		if tf == nil || !callsite.AppliesTo(tf.Name()) {
			continue
		}

		index[tf] = len(files)
		files = append(files, fileSites{name: tf.Name()})
	}

	nodeFilter := callsite.NodeTypes(r.catalog.Kinds())
	pector.Preorder(nodeFilter, func(node ast.Node) {
		i, ok := index[pass.Fset.File(node.Pos())]
		if !ok {
			return
		}

		site, ok := callsite.Of(node) // Never fails since only site nodes are requested.
		if !ok {
			return
		}

		files[i].sites = append(files[i].sites, site)
	})

	return files
}

// dispatch audits files concurrently, each with its own dispatcher and
// collector, and returns diagnostics in file order.
func (r *runner) dispatch(
	fset *token.FileSet,
	resolver *symbols.Resolver,
	files []fileSites,
	log *zap.Logger,
) ([]report.Diagnostic, error) {
	results := make([]*report.Collector, len(files))

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, min(r.jobs, len(files))))

	for i, file := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			var c report.Collector
			flog := log.With(zap.String("file", file.name))
			d := callsite.NewDispatcher(r.catalog, resolver, report.NewReporter(fset, &c, flog), flog)
			for _, site := range file.sites {
				d.Dispatch(site)
			}

			// Indices are unique per goroutine, no locking needed.
			results[i] = &c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diags []report.Diagnostic
	for _, c := range results {
		if c == nil {
			continue
		}
		diags = append(diags, c.Diagnostics()...)
	}

	return diags, nil
}
