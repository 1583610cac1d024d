package loam

// NodeMetadata represents the frontmatter of one node document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type NodeMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Kind string `json:"kind" mapstructure:"kind"`

	// Entry marks the node as the target of the entry transition.
	Entry bool `json:"entry" mapstructure:"entry"`

	// Fields are raw settings; scalar values of any type are stringified.
	Fields map[string]any `json:"fields" mapstructure:"fields"`

	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`

	// To and Then are shorthands for a single Continued or Completed transition.
	To   string `json:"to,omitempty" mapstructure:"to"`
	Then string `json:"then,omitempty" mapstructure:"then"`
}

// LoaderTransition is one outgoing edge declared in a node document.
type LoaderTransition struct {
	To   string `json:"to" mapstructure:"to"`
	Kind string `json:"kind" mapstructure:"kind"`
}
