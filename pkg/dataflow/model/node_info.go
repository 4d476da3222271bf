package model

// NodeKind identifies the role a node plays in a graph.
type NodeKind string

const (
	ExternalKind   NodeKind = "external"
	PipeKind       NodeKind = "pipe"
	PipelineKind   NodeKind = "pipeline"
	TranslatorKind NodeKind = "translator"
	ModelKind      NodeKind = "model"
	CacheKind      NodeKind = "cache"
)

// NodeInfo describes a single node. The ID is unique across all nodes
// created by a process, the Name is the human readable label.
type NodeInfo struct {
	ID   string
	Name string
	Kind NodeKind
}
