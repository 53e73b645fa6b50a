package graph

// =============================================================================
// Widget Layout Configuration
// =============================================================================

// WidgetOptions is the layout/physics configuration object handed to the
// external graph widget together with {nodes, edges}. It is plain data: the
// widget owns layout and physics, this package only describes how the
// projection should be presented.
type WidgetOptions struct {
	Directed bool          `json:"directed" bson:"directed"`
	Physics  PhysicsConfig `json:"physics" bson:"physics"`
	Edges    EdgeConfig    `json:"edges" bson:"edges"`
	Nodes    NodeConfig    `json:"nodes" bson:"nodes"`
}

// PhysicsConfig tunes the widget's force simulation.
type PhysicsConfig struct {
	Enabled       bool    `json:"enabled" bson:"enabled"`
	SpringLength  float64 `json:"springLength" bson:"spring_length"`
	NodeSpacing   float64 `json:"nodeSpacing" bson:"node_spacing"`
	Stabilization bool    `json:"stabilization" bson:"stabilization"`
}

// EdgeConfig describes how transition edges are drawn.
// SelfLoopRoundness bends self-loop edges away from their node so the loop
// does not overlap the circle.
type EdgeConfig struct {
	Arrows            string  `json:"arrows" bson:"arrows"`
	Smooth            bool    `json:"smooth" bson:"smooth"`
	SelfLoopRoundness float64 `json:"selfLoopRoundness" bson:"self_loop_roundness"`
}

// NodeConfig describes how state nodes are drawn. Final states get a second
// border ring; the initial state gets an inbound marker.
type NodeConfig struct {
	Shape         string `json:"shape" bson:"shape"`
	FinalBorder   string `json:"finalBorder" bson:"final_border"`
	InitialMarker string `json:"initialMarker" bson:"initial_marker"`
}

// DefaultWidgetOptions returns the configuration the workbench ships to the
// widget unless a caller overrides it.
func DefaultWidgetOptions() WidgetOptions {
	return WidgetOptions{
		Directed: true,
		Physics: PhysicsConfig{
			Enabled:       true,
			SpringLength:  120,
			NodeSpacing:   80,
			Stabilization: true,
		},
		Edges: EdgeConfig{
			Arrows:            "to",
			Smooth:            true,
			SelfLoopRoundness: 0.6,
		},
		Nodes: NodeConfig{
			Shape:         "circle",
			FinalBorder:   "double",
			InitialMarker: "arrow",
		},
	}
}
