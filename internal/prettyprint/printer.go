// Package prettyprint renders a resolved workflow.Workflow to a stable,
// deterministic text form (SPEC_FULL §4.10): one line per Cycle, sorted by
// name and then coordinate, indented lines per contained Task in construction order, each
// followed by its inputs/outputs/wait_on names and coordinates. Byte
// identical across two runs from the same configuration — the vehicle for
// the determinism property spec.md §8 names.
//
// Ground: original_source/src/sirocco/pretty_print.py's block/item tree
// renderer, re-expressed with strings.Builder and explicit sort keys the
// way the teacher's cli/helpers/formatter.go formats structured CLI output;
// optional ANSI styling via github.com/charmbracelet/lipgloss mirrors the
// teacher's charm-ecosystem stack but is off by default, since colored
// output is for terminal viewing, not the byte-identical comparison the
// determinism property needs.
package prettyprint

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/C2SM/ethiopia/internal/coord"
	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/temporal"
	"github.com/C2SM/ethiopia/internal/workflow"
)

// Printer formats a resolved Workflow as indented, block-structured text.
type Printer struct {
	// Indent is the number of spaces one nesting level adds. Zero defaults
	// to 2, mirroring the Python original's PrettyPrinter.indentation.
	Indent int
	// Colors enables ANSI styling for interactive terminal viewing. It must
	// stay false for any output compared across runs.
	Colors bool
}

// New returns a Printer with the default 2-space indentation and no color.
func New() *Printer {
	return &Printer{Indent: 2}
}

func (p *Printer) indentWidth() int {
	if p.Indent <= 0 {
		return 2
	}
	return p.Indent
}

func (p *Printer) indent(s string) string {
	prefix := strings.Repeat(" ", p.indentWidth())
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) asBlock(header, body string) string {
	if body == "" {
		return header + ":"
	}
	return header + ":\n" + p.indent(body)
}

var nameStyle = lipgloss.NewStyle().Bold(true)

func (p *Printer) styleName(name string) string {
	if !p.Colors {
		return name
	}
	return nameStyle.Render(name)
}

func coordKey(c coord.Coordinate) string {
	dims := c.Dims()
	var sb strings.Builder
	for i, d := range dims {
		if i > 0 {
			sb.WriteByte('\x1f')
		}
		sb.WriteString(d)
		sb.WriteByte('=')
		sb.WriteString(formatValue(c[d]))
	}
	return sb.String()
}

func formatValue(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(temporal.Layout)
	}
	return fmt.Sprintf("%v", v)
}

// formatBasic renders a GraphItem's name and coordinate on one line, e.g.
// `icon [date=2025-03-01T00:00:00Z]`.
func (p *Printer) formatBasic(item graph.GraphItem) string {
	name := p.styleName(item.ItemName())
	c := item.ItemCoordinate()
	if len(c) == 0 {
		return name
	}
	dims := c.Dims()
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%s=%s", d, formatValue(c[d]))
	}
	return fmt.Sprintf("%s [%s]", name, strings.Join(parts, ", "))
}

// Format renders w's cycles, sorted by name and then coordinate, each with its contained
// tasks in construction order.
func (p *Printer) Format(w *workflow.Workflow) string {
	cycles := append([]*graph.Cycle(nil), w.Cycles.Iterate()...)
	sort.SliceStable(cycles, func(i, j int) bool {
		if cycles[i].Name != cycles[j].Name {
			return cycles[i].Name < cycles[j].Name
		}
		return coordKey(cycles[i].Coordinate) < coordKey(cycles[j].Coordinate)
	})

	var body strings.Builder
	for i, cycle := range cycles {
		if i > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(p.formatCycle(cycle))
	}
	return p.asBlock("cycles", body.String())
}

func (p *Printer) formatCycle(c *graph.Cycle) string {
	var tasks strings.Builder
	for i, task := range c.Tasks {
		if i > 0 {
			tasks.WriteByte('\n')
		}
		tasks.WriteString(p.formatTask(task))
	}
	return p.asBlock(p.formatBasic(c), p.asBlock("tasks", tasks.String()))
}

func (p *Printer) formatTask(t *graph.Task) string {
	var sections []string
	if len(t.Inputs) > 0 {
		sections = append(sections, p.asBlock("input", p.formatItems(dataItems(t.Inputs))))
	}
	if len(t.Outputs) > 0 {
		sections = append(sections, p.asBlock("output", p.formatItems(dataItems(t.Outputs))))
	}
	if len(t.WaitOn) > 0 {
		sections = append(sections, p.asBlock("wait on", p.formatItems(taskItems(t.WaitOn))))
	}
	return p.asBlock(p.formatBasic(t), strings.Join(sections, "\n"))
}

func (p *Printer) formatItems(items []graph.GraphItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + p.formatBasic(item)
	}
	return strings.Join(lines, "\n")
}

func dataItems(ds []*graph.Data) []graph.GraphItem {
	out := make([]graph.GraphItem, len(ds))
	for i, d := range ds {
		out[i] = d
	}
	return out
}

func taskItems(ts []*graph.Task) []graph.GraphItem {
	out := make([]graph.GraphItem, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}
