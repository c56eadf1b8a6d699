package grammar

import (
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// lrItem is a dotted production: an index into the augmented production
// list plus the dot position. Canonical LR(1) items additionally carry a
// lookahead; SLR items leave it nil. Items refer to the canonicalized RHS
// (epsilon productions have an empty RHS at this layer).
type lrItem struct {
	prod      int
	dot       int
	lookahead *Symbol
}

type itemID string

// itemSignature is the identity structhash digests; it excludes lexemes and
// positions.
type itemSignature struct {
	Prod      int
	Dot       int
	Lookahead string
}

func (it lrItem) id() itemID {
	sig := itemSignature{Prod: it.prod, Dot: it.dot}
	if it.lookahead != nil {
		sig.Lookahead = it.lookahead.Kind.String() + ":" + it.lookahead.Name
	}
	return itemID(structhash.Sha1(sig, 1))
}

// itemSet is a set of items with deterministic iteration order.
type itemSet struct {
	items map[itemID]lrItem
	order []itemID
}

func newItemSet() *itemSet {
	return &itemSet{items: map[itemID]lrItem{}}
}

func (s *itemSet) add(it lrItem) bool {
	id := it.id()
	if _, ok := s.items[id]; ok {
		return false
	}
	s.items[id] = it
	s.order = append(s.order, id)
	return true
}

func (s *itemSet) ordered() []lrItem {
	items := make([]lrItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items
}

func (s *itemSet) len() int {
	return len(s.items)
}

// signature identifies the set independently of insertion order; states are
// interned by it.
func (s *itemSet) signature() string {
	hexes := make([]string, 0, len(s.order))
	for _, id := range s.order {
		hexes = append(hexes, string(id))
	}
	sort.Strings(hexes)
	return strings.Join(hexes, "")
}

// lrState is one automaton state: the closed item set plus the set of
// symbols appearing after a dot, which drives the goto expansion.
type lrState struct {
	items    *itemSet
	afterDot SymbolSet
}
