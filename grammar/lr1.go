package grammar

// lr1Strategy builds a canonical LR(1) table. Items carry one lookahead
// each; the closure derives lookaheads from FIRST of the material after the
// expanded non-terminal followed by the parent item's lookahead, and reduce
// entries are emitted exactly on the item's lookahead. No LALR merge is
// performed: states differing only in lookaheads stay distinct.
type lr1Strategy struct{}

func (lr1Strategy) initialItems(g *LR) []lrItem {
	end := g.cfg.EndMark()
	return []lrItem{{prod: 0, dot: 0, lookahead: &end}}
}

func (lr1Strategy) closure(g *LR, set *itemSet) {
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

			// FIRST(βa), where β follows the dotted non-terminal and a is
			// the parent's lookahead.
			var lookaheads []Symbol
			rest := g.itemRhs(it)[it.dot+1:]
			if len(rest) == 0 {
				if it.lookahead != nil {
					lookaheads = append(lookaheads, *it.lookahead)
				}
			} else {
				seq := make([]Symbol, 0, len(rest)+1)
				seq = append(seq, rest...)
				if it.lookahead != nil {
					seq = append(seq, *it.lookahead)
				}
				for _, s := range g.firstOfSeq(seq) {
					if s.IsEpsilon() {
						continue
					}
					lookaheads = append(lookaheads, s)
				}
			}

			for _, id := range g.symbolMap[sym.Key()] {
				for _, la := range lookaheads {
					la := la
					item := lrItem{prod: id, dot: 0, lookahead: &la}
					if set.add(item) {
						next = append(next, item)
					}
				}
			}
		}
		unchecked = next
	}
}

func (lr1Strategy) acceptReduce(g *LR, set *itemSet, idx int) error {
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
		la := *it.lookahead
		if existing, ok := g.actions.get(idx, la.Key()); ok {
			if existing == Reduce(it.prod) {
				continue
			}
			return &ConflictError{State: idx, On: la, Existing: existing, New: Reduce(it.prod)}
		}
		g.actions.set(idx, la.Key(), Reduce(it.prod))
	}
	return nil
}
