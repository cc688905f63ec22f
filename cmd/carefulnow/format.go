package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"

	"github.com/sirkon/carefulnow/internal/report"
	"github.com/sirkon/carefulnow/internal/rules"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// printer renders command results in one of the output formats.
type printer interface {
	diagnostics(w io.Writer, diags []report.Diagnostic) error
	rules(w io.Writer, rs []*rules.Rule) error
}

func newPrinter(format string) (printer, error) {
	switch format {
	case formatText:
		return textPrinter{}, nil
	case formatJSON:
		return jsonPrinter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q, must be one of %s or %s", format, formatText, formatJSON)
	}
}

var (
	fatalColor   = color.New(color.FgRed, color.Bold)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	idColor      = color.New(color.Bold)
)

func severityColor(s rules.Severity) *color.Color {
	switch s {
	case rules.SeverityFatal:
		return fatalColor
	case rules.SeverityError:
		return errorColor
	case rules.SeverityWarning:
		return warningColor
	default:
		return infoColor
	}
}

type textPrinter struct{}

// diagnostics prints one line per diagnostic:
//
//	internal/store/store.go:12:2: warning[CarefulNow] This method has special ...
func (textPrinter) diagnostics(w io.Writer, diags []report.Diagnostic) error {
	for _, d := range diags {
		_, err := fmt.Fprintf(
			w,
			"%s: %s[%s] %s\n",
			d.Position,
			severityColor(d.Rule.Severity).Sprint(d.Rule.Severity),
			idColor.Sprint(d.Rule.ID),
			d.Message,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (textPrinter) rules(w io.Writer, rs []*rules.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tCATEGORY\tPRIORITY\tSEVERITY\tKINDS\tSUMMARY"); err != nil {
		return err
	}

	for _, r := range rs {
		_, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%d\t%s\t%v\t%s\n",
			r.ID,
			r.Category,
			r.Priority,
			r.Severity,
			r.Kinds(),
			r.Description(),
		)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

type jsonPrinter struct{}

type jsonDiagnostic struct {
	File     string         `json:"file"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
	ID       string         `json:"id"`
	Category rules.Category `json:"category"`
	Priority int            `json:"priority"`
	Severity rules.Severity `json:"severity"`
	Message  string         `json:"message"`
	Trigger  string         `json:"trigger"`
}

type jsonRule struct {
	ID          string           `json:"id"`
	Category    rules.Category   `json:"category"`
	Priority    int              `json:"priority"`
	Severity    rules.Severity   `json:"severity"`
	Kinds       []rules.NodeKind `json:"kinds"`
	Summary     string           `json:"summary"`
	Explanation string           `json:"explanation,omitempty"`
	Message     string           `json:"message"`
}

func (jsonPrinter) diagnostics(w io.Writer, diags []report.Diagnostic) error {
	res := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		res = append(res, jsonDiagnostic{
			File:     d.Position.Filename,
			Line:     d.Position.Line,
			Column:   d.Position.Column,
			ID:       d.Rule.ID,
			Category: d.Rule.Category,
			Priority: d.Rule.Priority,
			Severity: d.Rule.Severity,
			Message:  d.Message,
			Trigger:  d.Trigger,
		})
	}

	return encode(w, res)
}

func (jsonPrinter) rules(w io.Writer, rs []*rules.Rule) error {
	res := make([]jsonRule, 0, len(rs))
	for _, r := range rs {
		res = append(res, jsonRule{
			ID:          r.ID,
			Category:    r.Category,
			Priority:    r.Priority,
			Severity:    r.Severity,
			Kinds:       r.Kinds(),
			Summary:     r.Summary,
			Explanation: r.Explanation,
			Message:     r.Message,
		})
	}

	return encode(w, res)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}
