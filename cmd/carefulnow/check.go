package main

import (
	"cmp"
	"fmt"
	"go/token"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"

	"github.com/sirkon/carefulnow"
	"github.com/sirkon/carefulnow/internal/report"
	"github.com/sirkon/carefulnow/internal/rules"
)

type checkOptions struct {
	format string
	tests  bool
	jobs   int
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [flags] [packages]",
		Short: "Audit call sites of the given packages",
		Long:  `Load the given packages (./... by default), audit their call sites and print the findings. Exits with status 1 when anything was found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./..."}
			}

			return a.check(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format (text|json)")
	cmd.Flags().BoolVar(&opts.tests, "tests", false, "audit test files as well")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "max files of a package audited at once (0=auto)")

	return cmd
}

func (a *app) check(cmd *cobra.Command, opts checkOptions, patterns []string) error {
	out, err := newPrinter(opts.format)
	if err != nil {
		return err
	}

	catalog, err := rules.Builtin()
	if err != nil {
		return fmt.Errorf("load builtin rules: %w", err)
	}

	cfg := &packages.Config{
		Context: cmd.Context(),
		Mode:    packages.LoadAllSyntax,
		Tests:   opts.tests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("load packages: %w", err)
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		return fmt.Errorf("%d errors while loading packages", n)
	}
	a.log.Debug("packages loaded", zap.Strings("patterns", patterns), zap.Int("count", len(pkgs)))

	analyzer := carefulnow.New(catalog, carefulnow.WithLogger(a.log), carefulnow.WithJobs(opts.jobs))
	graph, err := checker.Analyze([]*analysis.Analyzer{analyzer}, pkgs, &checker.Options{})
	if err != nil {
		return fmt.Errorf("analyze packages: %w", err)
	}

	var diags []report.Diagnostic
	for _, act := range graph.Roots {
		if act.Err != nil {
			return fmt.Errorf("analyze %s: %w", act.Package.PkgPath, act.Err)
		}

		res, ok := act.Result.(*carefulnow.Result)
		if !ok {
			continue
		}
		diags = append(diags, res.Diagnostics...)
	}

	diags = arrange(diags)
	if err := out.diagnostics(a.stdout, relativize(diags)); err != nil {
		return fmt.Errorf("print diagnostics: %w", err)
	}

	if len(diags) > 0 {
		return fmt.Errorf("%w: %d", errFindings, len(diags))
	}

	return nil
}

// arrange sorts diagnostics by file and offset. Diagnostics of a single site
// keep the order they were reported in, which is the catalog order. Test
// variants of a package report the same sites again, these duplicates are
// removed. Repeated annotations of a declaration are not duplicates: they
// differ by the annotation index.
func arrange(diags []report.Diagnostic) []report.Diagnostic {
	type key struct {
		pos     token.Position
		rule    string
		trigger string
		index   int
	}

	seen := make(map[key]struct{}, len(diags))
	res := make([]report.Diagnostic, 0, len(diags))
	for _, d := range diags {
		k := key{pos: d.Position, rule: d.Rule.ID, trigger: d.Trigger, index: d.Index}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		res = append(res, d)
	}

	slices.SortStableFunc(res, func(a, b report.Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Position.Filename, b.Position.Filename),
			cmp.Compare(a.Position.Offset, b.Position.Offset),
		)
	})

	return res
}

// relativize shortens file names relative to the working directory where possible.
func relativize(diags []report.Diagnostic) []report.Diagnostic {
	wd, err := filepath.Abs(".")
	if err != nil {
		return diags
	}

	for i := range diags {
		rel, err := filepath.Rel(wd, diags[i].Position.Filename)
		if err != nil || !filepath.IsLocal(rel) {
			continue
		}
		diags[i].Position.Filename = rel
	}

	return diags
}
