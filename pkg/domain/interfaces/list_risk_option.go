package interfaces

// ListRiskOption is a functional option for filtering risks in List.
// All provided filters combine with AND semantics.
type ListRiskOption func(*listRiskConfig)

type listRiskConfig struct {
	levels     []string
	categories []string
	statuses   []string
	ownerIDs   []string
}

// WithLevels filters risks by current risk level
func WithLevels(levels []string) ListRiskOption {
	return func(c *listRiskConfig) {
		c.levels = levels
	}
}

// WithCategories filters risks by category
func WithCategories(categories []string) ListRiskOption {
	return func(c *listRiskConfig) {
		c.categories = categories
	}
}

// WithStatuses filters risks by status
func WithStatuses(statuses []string) ListRiskOption {
	return func(c *listRiskConfig) {
		c.statuses = statuses
	}
}

// WithOwnerIDs filters risks by owner
func WithOwnerIDs(ownerIDs []string) ListRiskOption {
	return func(c *listRiskConfig) {
		c.ownerIDs = ownerIDs
	}
}

// BuildListRiskConfig builds a listRiskConfig from options
func BuildListRiskConfig(opts ...ListRiskOption) *listRiskConfig {
	cfg := &listRiskConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Levels returns the level filter, or nil if not set
func (c *listRiskConfig) Levels() []string { return c.levels }

// Categories returns the category filter, or nil if not set
func (c *listRiskConfig) Categories() []string { return c.categories }

// Statuses returns the status filter, or nil if not set
func (c *listRiskConfig) Statuses() []string { return c.statuses }

// OwnerIDs returns the owner filter, or nil if not set
func (c *listRiskConfig) OwnerIDs() []string { return c.ownerIDs }
