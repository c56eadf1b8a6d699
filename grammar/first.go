package grammar

// calcFirst computes FIRST for every symbol reachable from the production
// list. Non-terminals are computed recursively with the memo doubling as the
// recursion guard: a cycle sees the partially built (possibly empty) entry
// and terminates, so a self-cycle contributes epsilon only if some other
// path derives it.
func (g *grammarBase) calcFirst() {
	for _, prod := range g.prods {
		g.firstOf(prod.Lhs)
	}
}

func (g *grammarBase) firstOf(sym Symbol) SymbolSet {
	k := sym.Key()
	if set, ok := g.first[k]; ok {
		return set
	}

	if !sym.IsNonTerminal() {
		set := SymbolSet{}
		set.add(sym)
		g.first[k] = set
		return set
	}

	result := SymbolSet{}
	g.first[k] = result
	for _, id := range g.symbolMap[k] {
		nullable := true
		for _, s := range g.prods[id].Rhs {
			fst := g.firstOf(s)
			result.mergeExceptEpsilon(fst)
			if !fst.hasEpsilon() {
				nullable = false
				break
			}
		}
		if nullable {
			result.add(g.cfg.Epsilon())
		}
	}
	return result
}

// firstOfSeq computes FIRST of a symbol sequence with the standard
// union-until-non-nullable rule. The empty sequence yields {ε}.
func (g *grammarBase) firstOfSeq(symbols []Symbol) SymbolSet {
	result := SymbolSet{}
	for _, sym := range symbols {
		fst := g.firstOf(sym)
		result.mergeExceptEpsilon(fst)
		if !fst.hasEpsilon() {
			return result
		}
	}
	result.add(g.cfg.Epsilon())
	return result
}

// firstOfProd computes FIRST of a production's RHS.
func (g *grammarBase) firstOfProd(prod Production) SymbolSet {
	return g.firstOfSeq(prod.Rhs)
}
