package cache

// Keyer derives cache keys.
type Keyer interface {
	// PlanKey returns the key for the plan computed from a page document.
	PlanKey(docHash string, opts PlanKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string

	// PlanIDKey returns the key a plan is stored under for lookup by id.
	PlanIDKey(id string) string
}

// PlanKeyOpts are the options that change a computed plan.
type PlanKeyOpts struct {
	// Version is bumped whenever the layout rules change so stale plans are
	// never served.
	Version int `json:"version"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey implements Keyer.
func (DefaultKeyer) PlanKey(docHash string, opts PlanKeyOpts) string {
	return hashKey("plan", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// PlanIDKey implements Keyer. Ids are uuids and used as is.
func (DefaultKeyer) PlanIDKey(id string) string {
	return "planid:" + id
}

var _ Keyer = DefaultKeyer{}
