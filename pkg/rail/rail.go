package rail

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
)

// Elements are the nodes a rail is built against.
type Elements struct {
	// Rail is the sidebar host element. Required. Its children are replaced
	// by region placeholders at construction.
	Rail *dom.Node

	// Groups is the content container whose children are grouped. Required.
	Groups *dom.Node

	// Container is the outer reference container the first region is
	// stretched up to. Defaults to Groups.
	Container *dom.Node
}

// Option configures a Rail.
type Option func(*Rail)

// WithGeometry sets the geometry provider. Defaults to dom.BoxGeometry.
func WithGeometry(g dom.Geometry) Option {
	return func(r *Rail) {
		if g != nil {
			r.geo = g
		}
	}
}

// WithNotifier subscribes the rail's relayout to n.
func WithNotifier(n dom.Notifier) Option {
	return func(r *Rail) { r.notifier = n }
}

// WithLogger sets the logger for placement diagnostics. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(r *Rail) {
		if l != nil {
			r.logger = l
		}
	}
}

// Rail is a sidebar whose regions track the content area's runs.
type Rail struct {
	name        string
	railEl      *dom.Node
	groupsEl    *dom.Node
	containerEl *dom.Node

	geo      dom.Geometry
	notifier dom.Notifier
	logger   *log.Logger

	groups      [][]*dom.Node
	intersected bool
	regions     []*dom.Node
	unsubscribe func()
}

// New builds a rail named name.
//
// Grouping and region creation happen once, here. Commands queued on the rail
// element before construction run before New returns. A missing Rail or
// Groups element is fatal and returns ErrCodeMissingElements.
func New(name string, els Elements, opts ...Option) (*Rail, error) {
	if els.Rail == nil || els.Groups == nil {
		return nil, errors.New(errors.ErrCodeMissingElements, "missing elements")
	}
	if err := errors.ValidateRailName(name); err != nil {
		return nil, err
	}

	r := &Rail{
		name:        name,
		railEl:      els.Rail,
		groupsEl:    els.Groups,
		containerEl: els.Container,
		geo:         dom.BoxGeometry{},
		logger:      log.Default(),
	}
	if r.containerEl == nil {
		r.containerEl = els.Groups
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("rail " + name)

	children, width := r.groupsEl.Children(), r.geo.Rect(r.groupsEl).Width
	r.groups = GroupContent(children, width, r.geo)
	r.intersected = closesRun(children, width, r.geo)
	r.regions = r.initRegions()

	if r.notifier != nil {
		r.unsubscribe = r.notifier.OnGeometryChange(r.Relayout)
	}

	r.logger.Debug("built", "groups", len(r.groups), "regions", len(r.regions))
	observability.Rail().OnRailBuilt(name, len(r.groups), len(r.regions))

	Commands(r.railEl).attach(r)

	return r, nil
}

// Name returns the rail's instance name.
func (r *Rail) Name() string { return r.name }

// Element returns the rail host element.
func (r *Rail) Element() *dom.Node { return r.railEl }

// IsIntersected reports whether fullbleed content closed a group at
// construction. A trailing fullbleed element counts even though the group
// after it is empty and gets no region.
func (r *Rail) IsIntersected() bool {
	return r.intersected
}

// Groups returns the content groups formed at construction.
func (r *Rail) Groups() [][]*dom.Node { return r.groups }

// Regions returns the region placeholders in group order.
func (r *Rail) Regions() []*dom.Node { return r.regions }

// Geometry returns the geometry provider in use.
func (r *Rail) Geometry() dom.Geometry { return r.geo }

// Close stops listening for geometry changes. The rail stays usable.
func (r *Rail) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}
