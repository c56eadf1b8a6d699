package regex

import (
	"sort"
)

// dfa is a position-based deterministic automaton built from a position
// tree. State 1 is the initial state. Once built, a dfa is immutable and
// safe for concurrent use.
type dfa struct {
	exact        map[int]map[byte]int
	classed      map[int][]classTransition
	acceptStates map[int]struct{}
}

type classTransition struct {
	set charSet
	to  int
}

func newDFA(tree *positionTree) *dfa {
	d := &dfa{
		exact:        map[int]map[byte]int{},
		classed:      map[int][]classTransition{},
		acceptStates: map[int]struct{}{},
	}
	if tree.root == nil {
		d.acceptStates[1] = struct{}{}
		return d
	}

	// Sort the alphabet so state numbering is reproducible.
	tokens := make([]token, 0, len(tree.tokenPos))
	for tk := range tree.tokenPos {
		if tk.kind == tokenEndMark {
			continue
		}
		tokens = append(tokens, tk)
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokenOrder(tokens[i]) < tokenOrder(tokens[j])
	})

	initial := tree.root.first
	stateIDs := map[string]int{initial.signature(): 1}
	next := 2
	if initial.has(tree.endMarkPos) {
		d.acceptStates[1] = struct{}{}
	}

	type pending struct {
		set posSet
		id  int
	}
	unmarked := []pending{{set: initial, id: 1}}
	for len(unmarked) > 0 {
		state := unmarked[0]
		unmarked = unmarked[1:]

		for _, tk := range tokens {
			u := posSet{}
			for p := range tree.tokenPos[tk] {
				if state.set.has(p) {
					u.merge(tree.followpos[p])
				}
			}
			if len(u) == 0 {
				continue
			}

			sig := u.signature()
			id, known := stateIDs[sig]
			if !known {
				id = next
				next++
				stateIDs[sig] = id
				unmarked = append(unmarked, pending{set: u, id: id})
				if u.has(tree.endMarkPos) {
					d.acceptStates[id] = struct{}{}
				}
			}
			d.addTransition(state.id, tk, id)
		}
	}
	return d
}

func (d *dfa) addTransition(from int, tk token, to int) {
	if tk.kind == tokenChar {
		if d.exact[from] == nil {
			d.exact[from] = map[byte]int{}
		}
		d.exact[from][tk.ch] = to
		return
	}
	d.classed[from] = append(d.classed[from], classTransition{set: tk.set, to: to})
}

// step returns the successor of state on ch. Exact-byte transitions are
// preferred over class transitions.
func (d *dfa) step(state int, ch byte) (int, bool) {
	if to, ok := d.exact[state][ch]; ok {
		return to, true
	}
	for _, ct := range d.classed[state] {
		if ct.set.matches(ch) {
			return ct.to, true
		}
	}
	return 0, false
}

func (d *dfa) accepting(state int) bool {
	_, ok := d.acceptStates[state]
	return ok
}

func (d *dfa) match(s string) bool {
	state := 1
	for i := 0; i < len(s); i++ {
		to, ok := d.step(state, s[i])
		if !ok {
			return false
		}
		state = to
	}
	return d.accepting(state)
}

// longestMatch walks from the initial state and returns the length of the
// longest accepted prefix, 0 when no prefix of positive length is accepted.
func (d *dfa) longestMatch(s string) int {
	state := 1
	lastAccept := 0
	for i := 0; i < len(s); i++ {
		to, ok := d.step(state, s[i])
		if !ok {
			break
		}
		state = to
		if d.accepting(state) {
			lastAccept = i + 1
		}
	}
	return lastAccept
}

// tokenOrder yields a stable sort key for alphabet tokens.
func tokenOrder(tk token) string {
	if tk.kind == tokenChar {
		return "c" + string(tk.ch)
	}
	key := make([]byte, 0, 32)
	key = append(key, 's')
	for ch := 0; ch < 256; ch++ {
		if tk.set.has(byte(ch)) {
			key = append(key, byte(ch))
		}
	}
	return string(key)
}
