package carefulnow

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sirkon/deepequal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/sirkon/carefulnow/internal/rules"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), Analyzer, "callers", "logs")
}

func TestAnalyzer_Result(t *testing.T) {
	results := analysistest.Run(t, analysistest.TestData(), Analyzer, "callers")

	got := digest(t, results)
	want := []string{
		"callers.go:6:2 CarefulNow com.annotations.CarefulNow",
		"callers.go:7:2 CarefulNow com.annotations.CarefulNow",
		"callers.go:7:2 CarefulNow org.legacy.annotations.CarefulNow",
		"callers.go:8:2 CarefulNow org.legacy.annotations.CarefulNow",
		"callers.go:12:2 CarefulNow com.annotations.CarefulNow",
		"callers.go:15:6 CarefulNow com.annotations.CarefulNow",
		"callers.go:16:7 CarefulNow com.annotations.CarefulNow",
		"callers.go:24:2 CarefulNow com.annotations.CarefulNow",
		"callers.go:27:8 CarefulNow com.annotations.CarefulNow",
		"callers.go:29:3 CarefulNow com.annotations.CarefulNow",
		"callers.go:37:6 CarefulNow com.annotations.CarefulNow",
		"callers.go:38:7 CarefulNow com.annotations.CarefulNow",
	}

	if !equalStrings(want, got) {
		t.Error("unexpected diagnostics")
		deepequal.SideBySide(t, "diagnostics", want, got)
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	first := digest(t, analysistest.Run(t, analysistest.TestData(), Analyzer, "callers", "logs"))
	if len(first) == 0 {
		t.Fatal("no diagnostics collected")
	}

	for i := 0; i < 3; i++ {
		again := digest(t, analysistest.Run(t, analysistest.TestData(), Analyzer, "callers", "logs"))
		if !equalStrings(first, again) {
			t.Errorf("run #%d differs from the first one", i)
			deepequal.SideBySide(t, "diagnostics", first, again)
			return
		}
	}
}

func TestAnalyzer_SingleJob(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := New(rules.MustBuiltin(), WithLogger(zap.New(core)), WithJobs(1))

	analysistest.Run(t, analysistest.TestData(), a, "callers", "logs")

	if logs.FilterMessage("package audited").Len() == 0 {
		t.Error("package audit is expected to be logged")
	}
	// f() in callers and print() in logs at least.
	if n := logs.FilterMessage("skip site").Len(); n < 2 {
		t.Errorf("got %d skipped sites logged, want at least 2", n)
	}
}

func TestAnalyzer_CustomCatalog(t *testing.T) {
	catalog, err := rules.Load([]byte(`
rules:
  - id: NoPurge
    category: correctness
    priority: 1
    severity: fatal
    summary: purge is forbidden
    kinds: [method-call]
    match:
      names: [Purge]
`))
	if err != nil {
		t.Fatal(err)
	}

	results := analysistest.Run(t, analysistest.TestData(), New(catalog), "purge")

	got := digest(t, results)
	want := []string{"purge.go:6:2 NoPurge Purge"}
	if !equalStrings(want, got) {
		t.Error("unexpected diagnostics")
		deepequal.SideBySide(t, "diagnostics", want, got)
	}
}

// digest renders diagnostics of all the root packages as "file:line:col ID trigger".
func digest(t *testing.T, results []*analysistest.Result) []string {
	t.Helper()

	var res []string
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("analysis failed: %s", r.Err)
		}

		result, ok := r.Result.(*Result)
		if !ok {
			t.Fatalf("unexpected result type %T", r.Result)
		}

		for _, d := range result.Diagnostics {
			res = append(res, fmt.Sprintf(
				"%s:%d:%d %s %s",
				filepath.Base(d.Position.Filename),
				d.Position.Line,
				d.Position.Column,
				d.Rule.ID,
				d.Trigger,
			))
		}
	}

	return res
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
