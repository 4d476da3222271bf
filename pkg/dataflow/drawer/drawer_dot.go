package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-dataflow/pkg/dataflow/measure"
	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// DOTDrawer renders a graph in the DOT language. Node shapes follow the
// node kinds, an optional measure overlay labels nodes with their average
// transform duration and colours links by their average pull duration.
type DOTDrawer struct {
	graph graph.Graph[string, model.NodeInfo]
}

// NewDOTDrawer creates an empty DOT drawer.
func NewDOTDrawer() *DOTDrawer {
	return &DOTDrawer{
		graph: graph.New(func(info model.NodeInfo) string {
			return info.ID
		}, graph.Directed()),
	}
}

func shapeFor(kind model.NodeKind) string {
	switch kind {
	case model.ExternalKind:
		return "ellipse"
	case model.PipelineKind:
		return "box3d"
	case model.TranslatorKind:
		return "parallelogram"
	case model.ModelKind:
		return "hexagon"
	case model.CacheKind:
		return "cylinder"
	case model.PipeKind:
		return "box"
	default:
		return "box"
	}
}

// AddNode adds a node to the drawing. Adding the same node twice is a
// no-op.
func (d *DOTDrawer) AddNode(info model.NodeInfo) error {
	err := d.graph.AddVertex(info,
		graph.VertexAttribute("label", info.Name),
		graph.VertexAttribute("shape", shapeFor(info.Kind)),
	)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between a parent node and a child node. Adding the
// same link twice is a no-op.
func (d *DOTDrawer) AddLink(parentID, childID string) error {
	err := d.graph.AddEdge(parentID, childID)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentID, childID)
	}

	return nil
}

const maxRGB = 240

// AddMeasure overlays collected durations onto the drawing. Links are
// coloured from blue to red with the slowest pull in full red.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	palette := make(map[time.Duration]string)
	sorted := []time.Duration{}

	for _, metric := range msr.AllMetrics() {
		for _, info := range metric.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			if _, ok := palette[info.Elapsed]; ok {
				continue
			}

			palette[info.Elapsed] = ""

			sorted = append(sorted, info.Elapsed)
		}
	}

	if len(sorted) == 0 {
		return nil
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] > sorted[j]
	})

	maxValue := sorted[0]
	minValue := sorted[len(sorted)-1]

	for curr := range palette {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(curr-minValue) / float64(maxValue-minValue)
		}

		red := uint8(maxRGB * fraction)
		blue := uint8(maxRGB * (1 - fraction))

		edgeColor, err := colors.RGB(red, 0, blue) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		palette[curr] = edgeColor.ToHEX().String()
	}

	return d.applyMetrics(msr, palette)
}

func (d *DOTDrawer) applyMetrics(msr measure.Measure, palette map[time.Duration]string) error {
	for id, metric := range msr.AllMetrics() {
		_, properties, err := d.graph.VertexWithProperties(id)
		if err != nil {
			// Metrics may cover nodes outside of this drawing.
			if errors.Is(err, graph.ErrVertexNotFound) {
				continue
			}

			return errors.Wrap(err, "unable to get vertex properties")
		}

		nodeAvg := metric.AVGDuration()
		if nodeAvg != 0 {
			properties.Attributes["xlabel"] = nodeAvg.String()
		}

		if metric.GetTotalDuration() > 0 {
			properties.Attributes["xlabel"] += ", end: " + metric.GetTotalDuration().String()
		}

		for parentID, info := range metric.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			err := d.graph.UpdateEdge(parentID, id,
				graph.EdgeAttribute("label", info.Elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", palette[info.Elapsed]),
			)
			if err != nil {
				if errors.Is(err, graph.ErrEdgeNotFound) {
					continue
				}

				return errors.Wrap(err, "unable to update edge")
			}
		}
	}

	return nil
}

// Draw renders the drawing in the DOT language.
func (d *DOTDrawer) Draw(w io.Writer) error {
	desc, err := buildDOT(d.graph)
	if err != nil {
		return errors.Wrap(err, "unable to build dot description")
	}

	return writeDOT(w, desc)
}

// DrawFile renders the drawing into a file.
func (d *DOTDrawer) DrawFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", path)
	}
	defer file.Close()

	return d.Draw(file)
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type dotDescription struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []dotStatement
}

type dotStatement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func buildDOT(gra graph.Graph[string, model.NodeInfo]) (dotDescription, error) {
	desc := dotDescription{
		GraphType:    "digraph",
		Attributes:   make(map[string]string),
		EdgeOperator: "->",
		Statements:   make([]dotStatement, 0),
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)

		label := sourceProperties.Attributes["label"]
		if xlabel, ok := sourceProperties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, label, xlabel)

			delete(sourceProperties.Attributes, "xlabel")
			delete(sourceProperties.Attributes, "label")
		}

		stmt := dotStatement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency, edge := range adjacencies {
			stmt := dotStatement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func writeDOT(wrt io.Writer, desc dotDescription) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
