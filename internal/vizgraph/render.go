// Package vizgraph renders a resolved workflow.Workflow to an SVG document:
// one box per Task/Data coordinate-instance, arrows for input/output/wait-on
// edges (SPEC_FULL §4.11). This is a reduced-fidelity stand-in for the full
// graphviz-laid-out renderer spec.md places out of scope — it uses a fixed
// row/column layout instead of a real graph-layout algorithm, since the
// retrieval pack carries no graphviz-layout binding, only the pure-SVG
// drawing library github.com/ajstarks/svgo.
//
// Ground: original_source/src/sirocco/vizgraph.py's VizGraph — same node
// roles (task / available-data / generated-data) and the same color
// palette, re-expressed without a layout engine.
package vizgraph

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/C2SM/ethiopia/internal/graph"
	"github.com/C2SM/ethiopia/internal/workflow"
)

const (
	boxW      = 160
	boxH      = 44
	colGap    = 40
	rowGap    = 90
	marginTop = 40
	marginLR  = 40
)

// node styles, ported from vizgraph.py's *_node_kw dicts.
const (
	taskStyle     = "stroke:#4F161D;stroke-width:2;fill:#ffd8dc"
	dataAvStyle   = "stroke:#2d3d2c;stroke-width:2;fill:#c5e5c3"
	dataGenStyle  = "stroke:#001633;stroke-width:2;fill:#d8e9ff"
	textStyle     = "font-family:Fira Sans,sans-serif;font-size:12px;text-anchor:middle"
	ioEdgeStyle   = "stroke:#77767B;stroke-width:1.5;fill:none;marker-end:url(#arrow)"
	waitEdgeStyle = "stroke:#77767B;stroke-width:1.5;fill:none;stroke-dasharray:6,4;marker-end:url(#arrow)"
)

type point struct{ x, y int }

// Render draws wf as an SVG document to w. Layout is three fixed rows —
// available data, tasks, generated data — each item placed in construction
// order, which keeps the output deterministic across runs from the same
// configuration.
func Render(w io.Writer, wf *workflow.Workflow) error {
	data := wf.Data.Iterate()
	tasks := wf.Tasks.Iterate()

	var available, generated []*graph.Data
	for _, d := range data {
		if d.Available {
			available = append(available, d)
		} else {
			generated = append(generated, d)
		}
	}

	rowY := marginTop
	dataPos := make(map[*graph.Data]point, len(data))
	placeRow(available, rowY, dataPos)
	rowY += rowGap

	taskPos := make(map[*graph.Task]point, len(tasks))
	placeTaskRow(tasks, rowY, taskPos)
	rowY += rowGap

	placeRow(generated, rowY, dataPos)
	rowY += rowGap

	width := marginLR*2 + boxW + colGap*maxCols(len(available), len(tasks), len(generated))
	height := rowY

	canvas := svg.New(w)
	canvas.Start(width, height)
	defineArrowMarker(canvas)

	for _, task := range tasks {
		tp := taskPos[task]
		for _, in := range task.Inputs {
			if dp, ok := dataPos[in]; ok {
				drawEdge(canvas, dp, tp, ioEdgeStyle)
			}
		}
		for _, out := range task.Outputs {
			if dp, ok := dataPos[out]; ok {
				drawEdge(canvas, tp, dp, ioEdgeStyle)
			}
		}
		for _, wo := range task.WaitOn {
			if wp, ok := taskPos[wo]; ok {
				drawEdge(canvas, wp, tp, waitEdgeStyle)
			}
		}
	}

	for _, d := range available {
		drawNode(canvas, dataPos[d], d.Name, dataAvStyle)
	}
	for _, d := range generated {
		drawNode(canvas, dataPos[d], d.Name, dataGenStyle)
	}
	for _, t := range tasks {
		drawNode(canvas, taskPos[t], t.Name, taskStyle)
	}

	canvas.End()
	return nil
}

func maxCols(counts ...int) int {
	max := 1
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return max
}

func placeRow(items []*graph.Data, y int, pos map[*graph.Data]point) {
	for i, item := range items {
		pos[item] = point{x: marginLR + i*(boxW+colGap), y: y}
	}
}

func placeTaskRow(items []*graph.Task, y int, pos map[*graph.Task]point) {
	for i, item := range items {
		pos[item] = point{x: marginLR + i*(boxW+colGap), y: y}
	}
}

func drawNode(canvas *svg.SVG, p point, label, style string) {
	canvas.Rect(p.x, p.y, boxW, boxH, style)
	canvas.Text(p.x+boxW/2, p.y+boxH/2+4, label, textStyle)
}

func drawEdge(canvas *svg.SVG, from, to point, style string) {
	canvas.Line(from.x+boxW/2, from.y+boxH, to.x+boxW/2, to.y, style)
}

func defineArrowMarker(canvas *svg.SVG) {
	canvas.Def()
	canvas.Marker("arrow", 8, 3, 10, 10, `orient="auto" markerUnits="strokeWidth"`)
	canvas.Path("M0,0 L0,6 L9,3 z", "fill:#77767B")
	canvas.MarkerEnd()
	canvas.DefEnd()
}
