package grammar

// slrStrategy builds an SLR(1) table: LR(0) items, with reduce entries
// emitted for every terminal in FOLLOW of the reduced non-terminal.
type slrStrategy struct{}

func (slrStrategy) initialItems(g *LR) []lrItem {
	return []lrItem{{prod: 0, dot: 0}}
}

func (slrStrategy) closure(g *LR, set *itemSet) {
	unchecked := set.ordered()
	for len(unchecked) > 0 {
		var next []lrItem
		for _, it := range unchecked {
			if g.isEnd(it) {
				continue
			}
			sym := g.symbolAfterDot(it)
			if !sym.IsNonTerminal() {
				continue
			}
			for _, id := range g.symbolMap[sym.Key()] {
				item := lrItem{prod: id, dot: 0}
				if set.add(item) {
					next = append(next, item)
				}
			}
		}
		unchecked = next
	}
}

func (slrStrategy) acceptReduce(g *LR, set *itemSet, idx int) error {
	for _, it := range set.ordered() {
		if !g.isEnd(it) {
			continue
		}
		lhs := g.lrProds[it.prod].Lhs
		if lhs.Equal(g.prods[0].Lhs) {
			end := g.cfg.EndMark()
			if existing, ok := g.actions.get(idx, end.Key()); ok {
				return &ConflictError{State: idx, On: end, Existing: existing, New: Accept()}
			}
			g.actions.set(idx, end.Key(), Accept())
			continue
		}
		for _, sym := range g.follow[lhs.Key()] {
			if existing, ok := g.actions.get(idx, sym.Key()); ok {
				return &ConflictError{State: idx, On: sym, Existing: existing, New: Reduce(it.prod)}
			}
			g.actions.set(idx, sym.Key(), Reduce(it.prod))
		}
	}
	return nil
}
