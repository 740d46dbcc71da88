package bp3d

import (
	"fmt"
	"sort"
)

// PackOptions configures a single Pack invocation.
type PackOptions struct {
	BiggerFirst         bool
	DistributeItems     bool
	FixPoint            bool
	CheckStable         bool
	SupportSurfaceRatio float64
	Binding             [][]string
}

// DefaultPackOptions returns the baseline options: distribute items
// across bins, apply fix-point relaxation, check stability at a
// 0.75 support-surface ratio.
func DefaultPackOptions() PackOptions {
	return PackOptions{
		DistributeItems:     true,
		FixPoint:            true,
		CheckStable:         true,
		SupportSurfaceRatio: 0.75,
	}
}

// PackOption mutates a PackOptions in place.
type PackOption func(*PackOptions)

func WithBiggerFirst(v bool) PackOption { return func(o *PackOptions) { o.BiggerFirst = v } }
func WithDistributeItems(v bool) PackOption {
	return func(o *PackOptions) { o.DistributeItems = v }
}
func WithFixPoint(v bool) PackOption    { return func(o *PackOptions) { o.FixPoint = v } }
func WithCheckStable(v bool) PackOption { return func(o *PackOptions) { o.CheckStable = v } }
func WithSupportSurfaceRatio(v float64) PackOption {
	return func(o *PackOptions) { o.SupportSurfaceRatio = v }
}

// WithBinding declares buckets of item Group names whose members must
// interleave in the global ordering (e.g. WithBinding([]string{"server"},
// []string{"cabinet"}, []string{"wash"}) interleaves those three
// groups item-for-item). At least two buckets are required for
// binding to apply.
func WithBinding(groups ...[]string) PackOption {
	return func(o *PackOptions) { o.Binding = groups }
}

// Packer holds the bins and items registered for one packing run.
type Packer struct {
	Bins  []*Bin
	Items []*Item

	unfitItems []*Item
}

func NewPacker() *Packer {
	return &Packer{}
}

func (p *Packer) AddBin(b *Bin) { p.Bins = append(p.Bins, b) }

func (p *Packer) AddBins(bins ...*Bin) {
	p.Bins = append(p.Bins, bins...)
}

func (p *Packer) AddItem(i *Item) { p.Items = append(p.Items, i) }

func (p *Packer) AddItems(items ...*Item) {
	p.Items = append(p.Items, items...)
}

// UnfitItems returns every item that could not be placed in any bin,
// including overflow truncated during binding interleave.
func (p *Packer) UnfitItems() []*Item {
	return p.unfitItems
}

// Pack runs the full packing pipeline: order bins, order items
// (optionally honoring binding groups), then for each bin in turn,
// pack the current item pool, optionally re-sort and repack it once
// more to honor binding, compute gravity, and optionally narrow the
// pool (by id, excluding corners) before moving to the next bin.
//
// The item pool passed to each bin is always the FULL current pool,
// not just what failed to fit in the previous bin — only
// distribute_items narrows it between bins, mirroring the upstream
// per-item pack2bin loop which re-walks self.items from scratch for
// every bin.
func (p *Packer) Pack(opts ...PackOption) error {
	if len(p.Bins) == 0 {
		return ErrNoBins
	}
	if len(p.Items) == 0 {
		return ErrNoItems
	}

	options := DefaultPackOptions()
	for _, opt := range opts {
		opt(&options)
	}

	p.sortBins(options.BiggerFirst)

	items := p.sortItems(options.BiggerFirst)

	if len(options.Binding) > 1 {
		if err := p.validateBindingGroups(options.Binding); err != nil {
			return err
		}
		items, _ = p.sortBinding(items, options.Binding)
	}

	for _, bin := range p.Bins {
		bin.FixPoint = options.FixPoint
		bin.CheckStable = options.CheckStable
		bin.SupportSurfaceRatio = options.SupportSurfaceRatio

		p.packItemsIntoBin(bin, items)

		if len(options.Binding) > 1 {
			items = resortForBinding(items, options.BiggerFirst)
			bin.ClearBin()
			p.packItemsIntoBin(bin, items)
		}

		p.gravityCenter(bin)

		if options.DistributeItems {
			items = removeFitted(items, bin.Items)
		}
	}

	p.unfitItems = p.unplacedItems()

	return nil
}

// unplacedItems returns every registered item whose id never landed in
// any bin's committed Items. This is the authoritative unfit set: it is
// independent of whether distribute_items narrowed the working pool
// between bins, since with distribute_items=false the same full pool is
// threaded to every bin and only this id-membership check (not pool
// leftover) distinguishes placed items from truly unfit ones. Items
// truncated by a binding bucket overflow are included automatically,
// since they were never threaded into any bin's pack attempt.
func (p *Packer) unplacedItems() []*Item {
	placed := make(map[string]bool)
	for _, bin := range p.Bins {
		for _, it := range bin.Items {
			if it.Group == "corner" {
				continue
			}
			placed[it.ID().String()] = true
		}
	}

	var out []*Item
	for _, it := range p.Items {
		if !placed[it.ID().String()] {
			out = append(out, it)
		}
	}
	return out
}

// removeFitted returns items with every entry also present (by id) in
// fitted removed, skipping corner-reinforcement entries which are
// never part of the caller's pool to begin with.
func removeFitted(items []*Item, fitted []*Item) []*Item {
	fittedIDs := make(map[string]bool, len(fitted))
	for _, f := range fitted {
		if f.Group == "corner" {
			continue
		}
		fittedIDs[f.ID().String()] = true
	}
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if !fittedIDs[it.ID().String()] {
			out = append(out, it)
		}
	}
	return out
}

// validateBindingGroups reports ErrUnknownBindingGroup if any name in
// binding matches no registered item's Group.
func (p *Packer) validateBindingGroups(binding [][]string) error {
	present := make(map[string]bool, len(p.Items))
	for _, it := range p.Items {
		present[it.Group] = true
	}
	for _, names := range binding {
		for _, n := range names {
			if !present[n] {
				return ErrUnknownBindingGroup
			}
		}
	}
	return nil
}

func (p *Packer) sortBins(biggerFirst bool) {
	sort.SliceStable(p.Bins, func(i, j int) bool {
		if biggerFirst {
			return p.Bins[i].Volume() > p.Bins[j].Volume()
		}
		return p.Bins[i].Volume() < p.Bins[j].Volume()
	})
}

// sortItems splits items into stackable and non-stackable groups,
// orders each by (volume, weight, group-membership-count) with
// BiggerFirst controlling direction, and concatenates stackable before
// non-stackable.
func (p *Packer) sortItems(biggerFirst bool) []*Item {
	var stackable, nonStackable []*Item
	for _, it := range p.Items {
		if it.Stackable {
			stackable = append(stackable, it)
		} else {
			nonStackable = append(nonStackable, it)
		}
	}

	groupCounts := make(map[string]int)
	for _, it := range p.Items {
		groupCounts[it.Group]++
	}

	sortByVolumeWeightGroup(stackable, groupCounts, biggerFirst)
	sortByVolumeWeightGroup(nonStackable, groupCounts, biggerFirst)

	out := make([]*Item, 0, len(p.Items))
	out = append(out, stackable...)
	out = append(out, nonStackable...)
	return out
}

func sortByVolumeWeightGroup(items []*Item, groupCounts map[string]int, biggerFirst bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Volume() != b.Volume() {
			if biggerFirst {
				return a.Volume() > b.Volume()
			}
			return a.Volume() < b.Volume()
		}
		if a.Weight != b.Weight {
			if biggerFirst {
				return a.Weight > b.Weight
			}
			return a.Weight < b.Weight
		}
		if biggerFirst {
			return groupCounts[a.Group] > groupCounts[b.Group]
		}
		return groupCounts[a.Group] < groupCounts[b.Group]
	})
}

// sortBinding buckets items by group membership, one bucket per entry
// in binding (each entry names the group or groups that share a
// bucket), interleaves the buckets up to the shortest non-empty
// bucket's length, and returns the reordered pool plus whatever
// overflowed the shortest bucket (destined for unfit_items).
//
// Unbound items are split into front/back by whether the FIRST bucket
// is still empty once every item has been bucketed — a single check,
// not re-evaluated per item. This loop-invariant quirk is carried over
// deliberately from the source algorithm: it means every unbound item
// lands on the same side (all in front, or all in back), rather than
// tracking bucket occupancy dynamically.
func (p *Packer) sortBinding(items []*Item, binding [][]string) ([]*Item, []*Item) {
	groupSets := make([]map[string]bool, len(binding))
	for gi, names := range binding {
		groupSets[gi] = make(map[string]bool, len(names))
		for _, n := range names {
			groupSets[gi][n] = true
		}
	}

	buckets := make([][]*Item, len(binding))
	bound := make(map[string]bool, len(items))
	for _, it := range items {
		for gi, set := range groupSets {
			if set[it.Group] {
				buckets[gi] = append(buckets[gi], it)
				bound[it.ID().String()] = true
				break
			}
		}
	}

	firstBucketEmpty := len(buckets[0]) == 0
	var front, back []*Item
	for _, it := range items {
		if bound[it.ID().String()] {
			continue
		}
		if firstBucketEmpty {
			front = append(front, it)
		} else {
			back = append(back, it)
		}
	}

	minLen := -1
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		if minLen == -1 || len(b) < minLen {
			minLen = len(b)
		}
	}
	if minLen == -1 {
		minLen = 0
	}

	var interleaved, overflow []*Item
	for i := 0; i < minLen; i++ {
		for _, b := range buckets {
			if i < len(b) {
				interleaved = append(interleaved, b[i])
			}
		}
	}
	for _, b := range buckets {
		if len(b) > minLen {
			overflow = append(overflow, b[minLen:]...)
		}
	}

	ordered := append(append(front, interleaved...), back...)
	return ordered, overflow
}

// resortForBinding re-sorts a pool by (volume descending or ascending
// per biggerFirst, load-bear descending, priority ascending), giving
// binding groups a second, stability-and-priority-aware ordering pass
// before the repack that follows the interleaved first pass.
func resortForBinding(items []*Item, biggerFirst bool) []*Item {
	sorted := append([]*Item{}, items...)

	sort.SliceStable(sorted, func(i, j int) bool {
		if biggerFirst {
			return sorted[i].Volume() > sorted[j].Volume()
		}
		return sorted[i].Volume() < sorted[j].Volume()
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoadBear > sorted[j].LoadBear
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	return sorted
}

// packItemsIntoBin places corner reinforcements first when the bin is
// empty (AddCorners returns none when Corner is zero), then places
// items one at a time: the first item to enter an empty bin goes at
// the origin, every subsequent item is tried against a set of
// candidate pivots derived from already-placed items.
func (p *Packer) packItemsIntoBin(bin *Bin, items []*Item) {
	if len(bin.Items) == 0 {
		for i, corner := range bin.AddCorners() {
			bin.PutCorner(i, corner)
		}
	}

	for _, item := range items {
		if len(bin.Items) == 0 {
			if !bin.PutItem(item, Vector3{0, 0, 0}) {
				bin.UnfittedItems = append(bin.UnfittedItems, item)
			}
			continue
		}

		if !p.tryPivots(bin, item) {
			bin.UnfittedItems = append(bin.UnfittedItems, item)
		}
	}
}

// tryPivots enumerates a pivot for every axis of every already-placed
// item and attempts PutItem at each, stopping at the first success.
// Pivots along the height axis are skipped against non-stackable
// placed items, since nothing may rest above one.
func (p *Packer) tryPivots(bin *Bin, item *Item) bool {
	for _, placed := range bin.Items {
		dim := placed.GetDimension(placed.Rotation)
		for axis := AxisWidth; axis <= AxisDepth; axis++ {
			if axis == AxisHeight && !placed.Stackable {
				continue
			}
			pivot := placed.Position
			pivot[axis] += dim[axis]
			if bin.PutItem(item, pivot) {
				return true
			}
		}
	}
	return false
}

// gravityCenter computes the four-quadrant weight distribution of a
// packed bin. The low quadrants along width and height cover the
// integer cells 0..int(W)/2 and 0..int(H)/2 inclusive, so the split
// line falls at int(W)/2+1 and int(H)/2+1, one past the midpoint.
// The quadrant boundary test uses >= on one side and < on the other,
// an intentional asymmetry that leaves a coordinate sitting exactly on
// the split line attributed to a single quadrant rather than split.
func (p *Packer) gravityCenter(bin *Bin) {
	var total float64
	halfW := float64(int(bin.Width)/2 + 1)
	halfH := float64(int(bin.Height)/2 + 1)

	var quadrants [4]float64

	for _, item := range bin.Items {
		dim := item.GetDimension(item.Rotation)
		total += item.Weight

		xEnd := item.Position[0] + dim[0]
		yEnd := item.Position[1] + dim[1]

		xFrac := 1.0
		if xEnd > halfW && item.Position[0] < halfW {
			xFrac = (halfW - item.Position[0]) / dim[0]
		} else if item.Position[0] >= halfW {
			xFrac = 0
		}

		yFrac := 1.0
		if yEnd > halfH && item.Position[1] < halfH {
			yFrac = (halfH - item.Position[1]) / dim[1]
		} else if item.Position[1] >= halfH {
			yFrac = 0
		}

		frontLeft := item.Weight * xFrac * yFrac
		frontRight := item.Weight * (1 - xFrac) * yFrac
		backLeft := item.Weight * xFrac * (1 - yFrac)
		backRight := item.Weight * (1 - xFrac) * (1 - yFrac)

		quadrants[0] += frontLeft
		quadrants[1] += frontRight
		quadrants[2] += backLeft
		quadrants[3] += backRight
	}

	if total == 0 {
		bin.Gravity = [4]float64{}
		return
	}

	bin.Gravity = [4]float64{
		100 * quadrants[0] / total,
		100 * quadrants[1] / total,
		100 * quadrants[2] / total,
		100 * quadrants[3] / total,
	}
}

// PutOrder reorders a bin's committed Items in place for a physical
// loading sequence: PutGeneral sorts by (Y, Z, X) with X as the
// dominant key; PutOpenTop sorts by (X, Y, Z) with Z as the dominant
// key. PutUnspecified bins are left untouched.
func (p *Packer) PutOrder(bin *Bin) {
	switch bin.PutType {
	case PutGeneral:
		sort.SliceStable(bin.Items, func(i, j int) bool {
			return bin.Items[i].Position[1] < bin.Items[j].Position[1]
		})
		sort.SliceStable(bin.Items, func(i, j int) bool {
			return bin.Items[i].Position[2] < bin.Items[j].Position[2]
		})
		sort.SliceStable(bin.Items, func(i, j int) bool {
			return bin.Items[i].Position[0] < bin.Items[j].Position[0]
		})
	case PutOpenTop:
		sort.SliceStable(bin.Items, func(i, j int) bool {
			return bin.Items[i].Position[0] < bin.Items[j].Position[0]
		})
		sort.SliceStable(bin.Items, func(i, j int) bool {
			return bin.Items[i].Position[1] < bin.Items[j].Position[1]
		})
		sort.SliceStable(bin.Items, func(i, j int) bool {
			return bin.Items[i].Position[2] < bin.Items[j].Position[2]
		})
	}
}

func (p *Packer) String() string {
	return fmt.Sprintf("Packer(bins:%d, items:%d, unfit:%d)", len(p.Bins), len(p.Items), len(p.unfitItems))
}
