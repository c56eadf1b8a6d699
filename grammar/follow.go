package grammar

// calcFollow iterates over all productions to fixed point. The start
// symbol's FOLLOW seeds with the end-marker; epsilon never enters a FOLLOW
// set, and the sets are stripped of it at the end as a safeguard.
func (g *grammarBase) calcFollow() {
	start := g.prods[0].Lhs.Key()
	if g.follow[start] == nil {
		g.follow[start] = SymbolSet{}
	}
	g.follow[start].add(g.cfg.EndMark())

	for {
		changed := false
		for _, prod := range g.prods {
			lhsFollow := g.follow[prod.Lhs.Key()]
			for i, sym := range prod.Rhs {
				if !sym.IsNonTerminal() {
					continue
				}
				k := sym.Key()
				if g.follow[k] == nil {
					g.follow[k] = SymbolSet{}
				}

				rest := g.firstOfSeq(prod.Rhs[i+1:])
				if g.follow[k].mergeExceptEpsilon(rest) {
					changed = true
				}
				if rest.hasEpsilon() && g.follow[k].merge(lhsFollow) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	for _, set := range g.follow {
		for k := range set {
			if k.Kind == SymbolEpsilon {
				delete(set, k)
			}
		}
	}
}
