package fallingsky

import (
	"sort"

	"github.com/vovakirdan/fallingsky/internal/config"
)

// Row bands relative to the mean spawn row.
const (
	bandUpper = 0 // rows from the mean upward
	bandLower = 1 // rows beneath the mean, nearer the floor
)

// bonusPlacer holds the bookkeeping for one round of bonus placement.
type bonusPlacer struct {
	b     *Board
	tiers []config.Tier

	tierRolls map[string]int
	bandCount map[string]*[2]int
	bands     map[string][2][]int

	rowSpawns  []int
	rowColumns [][]int
}

// spawnBonusBlocks places up to rate bonus blocks. Tiers are picked by a
// weighted roll that corrects itself when a tier runs ahead of its share,
// rows come from bands around a mean a third of the way up the well, and
// rows and columns are spread so the blocks do not clump. A placement with
// no room left is skipped.
func (b *Board) spawnBonusBlocks(rate int) {
	if rate <= 0 {
		return
	}
	p := newBonusPlacer(b)
	for i := 0; i < rate; i++ {
		p.placeOne()
	}
}

func newBonusPlacer(b *Board) *bonusPlacer {
	tiers := b.cfg.Bonus.SortedTiers()
	maxSpawn := b.geo.Height - 2
	mean := maxSpawn / 3
	std := maxSpawn / 7

	p := &bonusPlacer{
		b:         b,
		tiers:     tiers,
		tierRolls: make(map[string]int, len(tiers)),
		bandCount: make(map[string]*[2]int, len(tiers)),
		bands:     make(map[string][2][]int, len(tiers)),
		rowSpawns: make([]int, maxSpawn),
	}

	clampRow := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > maxSpawn {
			return maxSpawn
		}
		return v
	}
	for i, t := range tiers {
		k := i + 1
		p.bands[t.Name] = [2][]int{
			bandUpper: rowRange(clampRow(mean+std*(k-1)), clampRow(mean+std*k)),
			bandLower: rowRange(clampRow(mean-std*k), clampRow(mean-std*(k-1))),
		}
		p.bandCount[t.Name] = &[2]int{}
	}

	half := b.geo.Width / 2
	p.rowColumns = make([][]int, maxSpawn)
	for row := range p.rowColumns {
		for col := -half; col < half; col++ {
			p.rowColumns[row] = append(p.rowColumns[row], col)
		}
	}
	return p
}

func rowRange(lo, hi int) []int {
	var rows []int
	for r := lo; r < hi; r++ {
		rows = append(rows, r)
	}
	return rows
}

// rollTier draws a tier. Tiers are checked from rarest to most common
// against twice their weight; the last tier takes the remainder.
func (p *bonusPlacer) rollTier() string {
	cfg := p.b.cfg.Bonus
	rng := p.b.rng

	byWeight := make([]config.Tier, len(p.tiers))
	copy(byWeight, p.tiers)
	sortTiersByWeight(byWeight)
	rarest := byWeight[0].Name

	rollsSoFar := 0
	for _, n := range p.tierRolls {
		rollsSoFar += n
	}

	var tier string
	for attempt := 0; attempt < cfg.RerollLimit; attempt++ {
		roll := rng.Intn(1000)
		tier = byWeight[len(byWeight)-1].Name
		for _, t := range byWeight[:len(byWeight)-1] {
			if roll < t.Weight*2 {
				tier = t.Name
				break
			}
		}

		// The rarest tier only shows up once early on.
		if tier == rarest && p.tierRolls[rarest] > 0 && rollsSoFar < 10 {
			continue
		}

		seen := p.tierRolls[tier]
		target := float64(cfg.Tiers[tier]) * cfg.Overshoot * 2 / 1000
		if rollsSoFar > 2 && seen > 0 && float64(seen)/float64(rollsSoFar+1) > target {
			continue
		}
		break
	}
	p.tierRolls[tier]++
	return tier
}

func sortTiersByWeight(tiers []config.Tier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Weight < tiers[j].Weight
	})
}

// availableRows returns the rows of a band that still have room, keeping
// only the least saturated ones.
func (p *bonusPlacer) availableRows(tier string, band int) []int {
	limit := p.b.geo.Width - 1
	least := -1
	var rows []int
	for _, r := range p.bands[tier][band] {
		if r >= len(p.rowSpawns) || p.rowSpawns[r] >= limit || len(p.rowColumns[r]) == 0 {
			continue
		}
		switch n := p.rowSpawns[r]; {
		case least < 0 || n < least:
			least = n
			rows = append(rows[:0], r)
		case n == least:
			rows = append(rows, r)
		}
	}
	return rows
}

func (p *bonusPlacer) placeOne() {
	rng := p.b.rng
	tier := p.rollTier()

	band := rng.Intn(2)
	counts := p.bandCount[tier]
	if counts[band] > 0 && counts[band] > counts[1-band] {
		band = 1 - band
	}

	rows := p.availableRows(tier, band)
	if len(rows) == 0 {
		band = 1 - band
		rows = p.availableRows(tier, band)
	}
	counts[band]++
	if len(rows) == 0 {
		return
	}

	row := rows[rng.Intn(len(rows))]
	p.rowSpawns[row]++

	cols := p.rowColumns[row]
	ci := rng.Intn(len(cols))
	col := cols[ci]
	p.rowColumns[row] = append(cols[:ci], cols[ci+1:]...)

	bonus := p.b.cfg.Bonus
	level := bonus.MinLevel + rng.Intn(bonus.MaxLevel-bonus.MinLevel+1)
	loc := C(p.b.geo.ColumnPx(col), p.b.geo.RowPx(row))
	if p.b.Occupied(loc) {
		return
	}
	blk, err := NewBonusBlock(loc, level)
	if err != nil {
		return
	}
	p.b.place(blk)
}
