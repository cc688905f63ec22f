package report

import (
	"go/ast"
	"go/token"

	"go.uber.org/zap"

	"github.com/sirkon/carefulnow/internal/rules"
)

// Reporter binds rule hits to call site locations and passes them to a sink.
//
// Reporting never fails: a diagnostic that cannot be located or is refused
// by the sink is logged and dropped, so the traversal goes on.
type Reporter struct {
	fset *token.FileSet
	sink Sink
	log  *zap.Logger
}

// NewReporter creates a reporter. A nil logger means no logging.
func NewReporter(fset *token.FileSet, sink Sink, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}

	return &Reporter{
		fset: fset,
		sink: sink,
		log:  log,
	}
}

// Report records a rule hit at the given call site.
func (r *Reporter) Report(rule *rules.Rule, hit rules.Hit, site ast.Node) {
	if site == nil {
		r.log.Debug("drop diagnostic without a site", zap.String("rule", rule.ID))
		return
	}

	pos, end := site.Pos(), site.End()
	if !pos.IsValid() || r.fset.File(pos) == nil {
		r.log.Debug(
			"drop diagnostic with unknown location",
			zap.String("rule", rule.ID),
			zap.String("trigger", hit.Trigger),
			zap.Int("pos", int(pos)),
		)
		return
	}

	d := Diagnostic{
		Rule:     rule.Identity,
		Message:  rule.Message,
		Trigger:  hit.Trigger,
		Index:    hit.Index,
		Pos:      pos,
		End:      end,
		Position: r.fset.Position(pos),
	}
	if err := r.sink.Report(d); err != nil {
		r.log.Debug(
			"sink refused diagnostic",
			zap.String("rule", rule.ID),
			zap.Stringer("position", d.Position),
			zap.Error(err),
		)
	}
}
