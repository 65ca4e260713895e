package pipeline

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/siderail/pkg/cache"
	"github.com/matzehuels/siderail/pkg/dom"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/page"
	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/rail"
)

// Slot configuration written before packing. Fullbleed pages omit the tall
// slot formats.
const (
	DataConfigKey      = "configKey"
	ConfigKeyDefault   = "rhr"
	ConfigKeyFullbleed = "rhr-fullbleed"
)

// =============================================================================
// Layout
// =============================================================================

// Layout is a laid-out page whose rails stay subscribed to geometry changes.
type Layout struct {
	doc      *page.Document
	fixture  *page.Fixture
	rails    []*rail.Rail
	leftover []*dom.Node
	notifier *dom.Broadcaster
	logger   *log.Logger
}

// NewLayout builds doc and lays out every rail in document order.
//
// For each rail the items queued before construction are pushed onto the
// rail element, the rail is built (running them), the remaining slot pool is
// packed into it and the items queued after construction are pushed. Slots a
// rail cannot take flow to the next rail.
func NewLayout(doc *page.Document, logger *log.Logger) (*Layout, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	l := &Layout{
		doc:      doc,
		fixture:  doc.Build(),
		notifier: dom.NewBroadcaster(),
		logger:   logger,
	}
	l.leftover = slices.Clone(l.fixture.Slots)

	for _, rn := range l.fixture.Rails {
		r, err := l.buildRail(rn)
		if err != nil {
			l.Close()
			return nil, errors.Wrap(errors.GetCode(err), err, "rail %q", rn.Name)
		}
		l.rails = append(l.rails, r)
	}
	return l, nil
}

func (l *Layout) buildRail(rn *page.RailNodes) (*rail.Rail, error) {
	var after []page.Item
	for _, it := range l.doc.ItemsFor(rn.Name) {
		if it.QueuedBefore() {
			rail.Commands(rn.Rail).Push(l.placeCommand(it))
		} else {
			after = append(after, it)
		}
	}

	els := rail.Elements{Rail: rn.Rail, Groups: rn.Content}
	if rn.Container != nil {
		els.Container = rn.Container
	}
	r, err := rail.New(rn.Name, els, rail.WithNotifier(l.notifier), rail.WithLogger(l.logger))
	if err != nil {
		return nil, err
	}

	configKey := ConfigKeyDefault
	if r.IsIntersected() {
		configKey = ConfigKeyFullbleed
	}
	for _, slot := range l.leftover {
		slot.SetData(DataConfigKey, configKey)
	}
	placed := r.PlaceSlots(&l.leftover)
	l.logger.Debug("packed rail", "rail", rn.Name, "intersected", r.IsIntersected(), "slots", len(placed))

	for _, it := range after {
		rail.Commands(rn.Rail).Push(l.placeCommand(it))
	}
	return r, nil
}

func (l *Layout) placeCommand(it page.Item) rail.Command {
	item := l.fixture.Node(it.ID)
	return func(r *rail.Rail) {
		r.PlaceItem(rail.PlacementRequest{
			Item:           item,
			RequiredHeight: it.RequiredHeight,
			Placement:      rail.Placement(it.Placement),
		})
	}
}

// Rails returns the live rails in document order.
func (l *Layout) Rails() []*rail.Rail { return l.rails }

// Fixture returns the page nodes the rails are built against.
func (l *Layout) Fixture() *page.Fixture { return l.fixture }

// Leftover returns the slots no rail could take.
func (l *Layout) Leftover() []*dom.Node { return l.leftover }

// Update applies the boxes of doc to the existing page and announces a
// geometry change, relaying out every rail. doc must have the same structure
// as the document the layout was built from.
func (l *Layout) Update(doc *page.Document) error {
	if err := l.fixture.Apply(doc); err != nil {
		return err
	}
	l.doc = doc
	l.notifier.Notify()
	return nil
}

// Close unsubscribes every rail from geometry changes.
func (l *Layout) Close() {
	for _, r := range l.rails {
		r.Close()
	}
}

// =============================================================================
// Snapshot
// =============================================================================

// Plan snapshots the current state of every rail.
func (l *Layout) Plan() *plan.Plan {
	p := &plan.Plan{
		ID:      uuid.NewString(),
		Version: plan.Version,
		Title:   l.doc.Title,
	}
	if data, err := l.doc.Canonical(); err == nil {
		p.DocumentHash = cache.Hash(data)
	}

	for i, r := range l.rails {
		p.Rails = append(p.Rails, l.snapshotRail(r, l.fixture.Rails[i]))
	}
	for _, slot := range l.leftover {
		p.Leftover = append(p.Leftover, slot.ID)
	}
	return p
}

func (l *Layout) snapshotRail(r *rail.Rail, rn *page.RailNodes) plan.Rail {
	geo := r.Geometry()
	out := plan.Rail{
		Name:        r.Name(),
		Intersected: r.IsIntersected(),
		Box:         geo.Rect(rn.Rail),
		Content:     geo.Rect(rn.Content),
	}

	grouped := make(map[*dom.Node]bool)
	for _, g := range r.Groups() {
		for _, n := range g {
			grouped[n] = true
		}
	}
	for _, n := range rn.Content.Children() {
		out.Blocks = append(out.Blocks, plan.Block{ID: n.ID, Box: geo.Rect(n), Fullbleed: !grouped[n]})
	}

	rects := r.RegionRects()
	free := r.FreeSpace()
	for i, region := range r.Regions() {
		reg := plan.Region{
			ID:        region.ID,
			Top:       rects[i].Top,
			Height:    rects[i].Height,
			Classes:   region.Classes(),
			FreeSpace: free[i],
		}
		for _, c := range region.Children() {
			child := plan.Child{ID: c.ID, Kind: l.fixture.Kind(c.ID)}
			if child.Kind == page.KindItem {
				child.Height = geo.Rect(c).Height
			}
			if len(c.Dataset) > 0 {
				child.Dataset = maps.Clone(c.Dataset)
			}
			reg.Children = append(reg.Children, child)
		}
		out.Regions = append(out.Regions, reg)
	}
	return out
}

// LayoutPlan builds doc and returns its plan without keeping the rails live.
func LayoutPlan(doc *page.Document, logger *log.Logger) (*plan.Plan, error) {
	l, err := NewLayout(doc, logger)
	if err != nil {
		return nil, err
	}
	defer l.Close()
	return l.Plan(), nil
}
