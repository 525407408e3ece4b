package types

// Plan is the full, ordered set of links for one package plus the run-wide
// policy the executor applies.
type Plan struct {
	Links             []PlannedLink    `json:"links"`
	ConflictStrategy  ConflictStrategy `json:"conflict_strategy"`
	CreateMissingDirs bool             `json:"create_missing_dirs"`

	// Root config values, kept for display
	Package  string `json:"package"`
	Target   string `json:"target"`
	LinkRoot bool   `json:"link_root"`
}

// Len returns the number of planned links.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Links)
}
