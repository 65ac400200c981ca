package rendering

import (
	"bytes"
	"io"
	"text/template"

	"github.com/jonathan/career-roadmap/internal/types"
)

const (
	cellWidth   = 170
	cellHeight  = 130
	boxWidth    = 150
	boxHeight   = 84
	marginX     = 30
	titleHeight = 70
	legendH     = 80
	minWidth    = 1200
	minHeight   = 600
	titleRunes  = 20
)

// depthColors colour boxes by depth; deeper levels reuse the last colour.
var depthColors = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

var depthLabels = []string{"Phase", "Sub-step", "Level 3", "Level 4", "Level 5+"}

type svgNode struct {
	X, Y, CX   int
	LabelY     int
	DurationY  int
	CountY     int
	LeftX      int
	RightX     int
	Color      string
	Label      string
	Months     int
	Milestones int
	Tasks      int
}

type svgEdge struct {
	X1, Y1, X2, Y2 int
}

type svgLegend struct {
	X, Y, TextX, TextY int
	Color              string
	Label              string
}

type svgData struct {
	Width, Height int
	TitleX        int
	Title         string
	BoxWidth      int
	BoxHeight     int
	Nodes         []svgNode
	Edges         []svgEdge
	Legend        []svgLegend
	InfoX, InfoY  int
}

var svgTemplate = template.Must(template.New("roadmap").Funcs(template.FuncMap{
	"esc": EscapeXML,
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="Helvetica, Arial, sans-serif">
<rect width="100%" height="100%" fill="#ffffff"/>
<text class="title" x="{{.TitleX}}" y="40" text-anchor="middle" font-size="22" font-weight="bold">{{esc .Title}}</text>
<g class="edges" stroke="#94a3b8" stroke-width="2" stroke-opacity="0.7">
{{- range .Edges}}
<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}"/>
{{- end}}
</g>
<g class="nodes">
{{- $w := .BoxWidth}}{{$h := .BoxHeight}}
{{- range .Nodes}}
<g class="node">
<rect x="{{.X}}" y="{{.Y}}" width="{{$w}}" height="{{$h}}" rx="8" fill="{{.Color}}" fill-opacity="0.9" stroke="#1e40af" stroke-width="2"/>
<text class="label" x="{{.CX}}" y="{{.LabelY}}" text-anchor="middle" font-size="12" font-weight="bold" fill="#ffffff">{{esc .Label}}</text>
<text class="duration" x="{{.CX}}" y="{{.DurationY}}" text-anchor="middle" font-size="11" fill="#e0e7ff">{{.Months}} mo</text>
{{- if .Milestones}}
<text class="milestones" x="{{.LeftX}}" y="{{.CountY}}" text-anchor="middle" font-size="11" fill="#ffffff">🎯{{.Milestones}}</text>
{{- end}}
{{- if .Tasks}}
<text class="tasks" x="{{.RightX}}" y="{{.CountY}}" text-anchor="middle" font-size="11" fill="#ffffff">📝{{.Tasks}}</text>
{{- end}}
</g>
{{- end}}
</g>
<g class="legend" font-size="12">
{{- range .Legend}}
<rect x="{{.X}}" y="{{.Y}}" width="14" height="14" fill="{{.Color}}"/>
<text x="{{.TextX}}" y="{{.TextY}}">{{esc .Label}}</text>
{{- end}}
<text class="info" x="{{.InfoX}}" y="{{.InfoY}}">🎯 Milestones   📝 Tasks</text>
</g>
</svg>
`))

// DiagramTitle is the heading drawn above a roadmap diagram.
func DiagramTitle(rm *types.Roadmap) string {
	return rm.PathTitle + " — " + string(rm.Focus)
}

// RenderSVG writes a tree diagram of rm to w.
func RenderSVG(w io.Writer, rm *types.Roadmap) error {
	if err := svgTemplate.Execute(w, buildSVGData(rm)); err != nil {
		return &Error{Stage: StageTemplate, Diagram: DiagramTitle(rm), Cause: err}
	}
	return nil
}

// SVG renders rm and returns the document bytes.
func SVG(rm *types.Roadmap) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, rm); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildSVGData(rm *types.Roadmap) svgData {
	nodes, edges := Layout(rm.Steps)

	maxDepth := 0
	for _, n := range nodes {
		maxDepth = max(maxDepth, n.Depth)
	}

	width, height := Size(nodes)

	// top-left corner of a node's box
	origin := func(n Node) (int, int) {
		return marginX + n.Column*cellWidth + (cellWidth-boxWidth)/2, titleHeight + n.Depth*cellHeight
	}

	data := svgData{
		Width:     width,
		Height:    height,
		TitleX:    width / 2,
		Title:     DiagramTitle(rm),
		BoxWidth:  boxWidth,
		BoxHeight: boxHeight,
	}

	for _, n := range nodes {
		x, y := origin(n)
		data.Nodes = append(data.Nodes, svgNode{
			X:          x,
			Y:          y,
			CX:         x + boxWidth/2,
			LabelY:     y + 24,
			DurationY:  y + 44,
			CountY:     y + 70,
			LeftX:      x + 30,
			RightX:     x + boxWidth - 30,
			Color:      depthColors[min(n.Depth, len(depthColors)-1)],
			Label:      Truncate(n.Title, titleRunes),
			Months:     n.Months,
			Milestones: n.Milestones,
			Tasks:      n.Tasks,
		})
	}

	for _, e := range edges {
		px, py := origin(nodes[e.From])
		cx, cy := origin(nodes[e.To])
		data.Edges = append(data.Edges, svgEdge{
			X1: px + boxWidth/2, Y1: py + boxHeight,
			X2: cx + boxWidth/2, Y2: cy,
		})
	}

	legendY := height - legendH + 10
	for i, color := range depthColors[:min(maxDepth+1, len(depthColors))] {
		x := marginX + i*120
		data.Legend = append(data.Legend, svgLegend{
			X: x, Y: legendY,
			TextX: x + 20, TextY: legendY + 12,
			Color: color,
			Label: depthLabels[i],
		})
	}
	data.InfoX = marginX
	data.InfoY = legendY + 44

	return data
}
