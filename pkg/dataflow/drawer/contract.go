package drawer

import (
	"io"

	"github.com/askiada/go-dataflow/pkg/dataflow/measure"
	"github.com/askiada/go-dataflow/pkg/dataflow/model"
)

// Drawer is an interface that defines the methods for drawing a graph.
type Drawer interface {
	// AddNode adds a node to the drawing.
	AddNode(info model.NodeInfo) error
	// AddLink adds a link between a parent node and a child node.
	AddLink(parentID, childID string) error
	// AddMeasure overlays collected durations onto the drawing.
	AddMeasure(msr measure.Measure) error
	// Draw renders the drawing.
	Draw(w io.Writer) error
}
