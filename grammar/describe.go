package grammar

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
)

// DescribeSets writes the FIRST and FOLLOW sets of every non-terminal,
// sorted for stable output.
func (g *grammarBase) DescribeSets(w io.Writer) {
	nonTerminals := treeset.NewWithStringComparator()
	for _, prod := range g.prods {
		nonTerminals.Add(prod.Lhs.Name)
	}

	nonTerminals.Each(func(_ int, v interface{}) {
		name := v.(string)
		k := Key{Kind: SymbolNonTerminal, Name: name}
		fmt.Fprintf(w, "FIRST(%v) = {%v}\n", name, joinSet(g.first[k]))
	})
	nonTerminals.Each(func(_ int, v interface{}) {
		name := v.(string)
		k := Key{Kind: SymbolNonTerminal, Name: name}
		fmt.Fprintf(w, "FOLLOW(%v) = {%v}\n", name, joinSet(g.follow[k]))
	})
}

// DescribeTable writes the LL(1) parsing table, one cell per line.
func (g *LL1) DescribeTable(w io.Writer) {
	nonTerminals := treeset.NewWithStringComparator()
	for _, prod := range g.prods {
		nonTerminals.Add(prod.Lhs.Name)
	}
	nonTerminals.Each(func(_ int, v interface{}) {
		name := v.(string)
		k := Key{Kind: SymbolNonTerminal, Name: name}
		terminals := treeset.NewWithStringComparator()
		for on := range g.table[k] {
			terminals.Add(on.Name)
		}
		terminals.Each(func(_ int, t interface{}) {
			for on, prod := range g.table[k] {
				if on.Name == t.(string) {
					fmt.Fprintf(w, "M[%v,%v] = %v\n", name, on.Name, prod)
				}
			}
		})
	})
}

// DescribeTables writes the ACTION and GOTO tables state by state.
func (g *LR) DescribeTables(w io.Writer) {
	for i := range g.states {
		fmt.Fprintf(w, "state %v\n", i)
		cells := treeset.NewWithStringComparator()
		for on := range g.actions[i] {
			cells.Add(on.Name)
		}
		cells.Each(func(_ int, v interface{}) {
			for on, act := range g.actions[i] {
				if on.Name == v.(string) {
					fmt.Fprintf(w, "  %v: %v\n", on.Name, act)
				}
			}
		})
		gotoCells := treeset.NewWithStringComparator()
		for on := range g.gotos[i] {
			gotoCells.Add(on.Name)
		}
		gotoCells.Each(func(_ int, v interface{}) {
			for on, to := range g.gotos[i] {
				if on.Name == v.(string) {
					fmt.Fprintf(w, "  %v: %v\n", on.Name, to)
				}
			}
		})
	}
}

// DescribeItems writes every item set of the LR automaton.
func (g *LR) DescribeItems(w io.Writer) {
	for i, state := range g.states {
		fmt.Fprintf(w, "I%v:\n", i)
		for _, it := range state.items.ordered() {
			fmt.Fprintf(w, "  %v\n", g.itemString(it))
		}
	}
}

func joinSet(set SymbolSet) string {
	names := treeset.NewWithStringComparator()
	for _, sym := range set {
		names.Add(sym.Name)
	}
	out := ""
	names.Each(func(i int, v interface{}) {
		if i > 0 {
			out += ","
		}
		out += v.(string)
	})
	return out
}
