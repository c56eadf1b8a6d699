package regex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type posSet map[int]struct{}

func newPosSet(ps ...int) posSet {
	s := posSet{}
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s posSet) add(p int) {
	s[p] = struct{}{}
}

func (s posSet) has(p int) bool {
	_, ok := s[p]
	return ok
}

func (s posSet) merge(other posSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

func (s posSet) clone() posSet {
	c := make(posSet, len(s))
	c.merge(s)
	return c
}

func (s posSet) sorted() []int {
	ps := make([]int, 0, len(s))
	for p := range s {
		ps = append(ps, p)
	}
	sort.Ints(ps)
	return ps
}

// signature is a canonical form of the set, used to intern DFA states.
func (s posSet) signature() string {
	var b strings.Builder
	for i, p := range s.sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}

type nodeKind int

const (
	nodeChar nodeKind = iota
	nodeConcat
	nodeAlt
	nodeStar
	nodePlus
)

// node is one node of the position tree. Leaves carry a pattern token and a
// unique position id; nullable, firstpos, and lastpos are computed on
// construction since the tree is built bottom-up from postfix order.
type node struct {
	kind     nodeKind
	tok      token
	pos      int
	left     *node
	right    *node
	nullable bool
	first    posSet
	last     posSet
}

func newCharNode(tok token, pos int) *node {
	return &node{
		kind:  nodeChar,
		tok:   tok,
		pos:   pos,
		first: newPosSet(pos),
		last:  newPosSet(pos),
	}
}

func newConcatNode(left, right *node) *node {
	n := &node{
		kind:     nodeConcat,
		left:     left,
		right:    right,
		nullable: left.nullable && right.nullable,
		first:    left.first.clone(),
		last:     right.last.clone(),
	}
	if left.nullable {
		n.first.merge(right.first)
	}
	if right.nullable {
		n.last.merge(left.last)
	}
	return n
}

func newAltNode(left, right *node) *node {
	n := &node{
		kind:     nodeAlt,
		left:     left,
		right:    right,
		nullable: left.nullable || right.nullable,
		first:    left.first.clone(),
		last:     left.last.clone(),
	}
	n.first.merge(right.first)
	n.last.merge(right.last)
	return n
}

func newStarNode(child *node) *node {
	return &node{
		kind:     nodeStar,
		left:     child,
		nullable: true,
		first:    child.first.clone(),
		last:     child.last.clone(),
	}
}

func newPlusNode(child *node) *node {
	return &node{
		kind:     nodePlus,
		left:     child,
		nullable: child.nullable,
		first:    child.first.clone(),
		last:     child.last.clone(),
	}
}

func (n *node) visit(fn func(*node)) {
	if n == nil {
		return
	}
	fn(n)
	n.left.visit(fn)
	n.right.visit(fn)
}

// positionTree is the parsed pattern with position bookkeeping: which leaf
// token owns which positions, and the followpos relation.
type positionTree struct {
	root       *node
	tokenPos   map[token]posSet
	followpos  map[int]posSet
	endMarkPos int
}

// newPositionTree builds the position tree for a pattern. An empty pattern
// yields a nil root; the DFA layer treats that as "accept only the empty
// string".
func newPositionTree(pattern string) (*positionTree, error) {
	t := &positionTree{
		tokenPos:  map[token]posSet{},
		followpos: map[int]posSet{},
	}
	if pattern == "" {
		return t, nil
	}

	tokens, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	postfix, err := toPostfix(tokens)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("regex %q postfix: %v", pattern, postfix)

	var stack []*node
	pop := func() *node {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}
	pos := 1
	for _, tk := range postfix {
		switch {
		case tk.is(opStar):
			if len(stack) < 1 {
				return nil, fmt.Errorf("%w: '*' operator with empty stack", ErrInvalidRegex)
			}
			stack = append(stack, newStarNode(pop()))
		case tk.is(opPlus):
			if len(stack) < 1 {
				return nil, fmt.Errorf("%w: '+' operator with empty stack", ErrInvalidRegex)
			}
			stack = append(stack, newPlusNode(pop()))
		case tk.is(opConcat):
			if len(stack) < 2 {
				return nil, fmt.Errorf("%w: '·' operator with fewer than 2 operands", ErrInvalidRegex)
			}
			right := pop()
			left := pop()
			stack = append(stack, newConcatNode(left, right))
		case tk.is(opAlt):
			if len(stack) < 2 {
				return nil, fmt.Errorf("%w: '|' operator with fewer than 2 operands", ErrInvalidRegex)
			}
			right := pop()
			left := pop()
			stack = append(stack, newAltNode(left, right))
		case tk.isOperand():
			if _, ok := t.tokenPos[tk]; !ok {
				t.tokenPos[tk] = posSet{}
			}
			t.tokenPos[tk].add(pos)
			if tk.kind == tokenEndMark {
				t.endMarkPos = pos
			}
			stack = append(stack, newCharNode(tk, pos))
			pos++
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidRegex, pattern)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: leftover operands after parsing %q", ErrInvalidRegex, pattern)
	}
	t.root = stack[0]

	t.root.visit(func(n *node) {
		switch n.kind {
		case nodeConcat:
			for p := range n.left.last {
				if _, ok := t.followpos[p]; !ok {
					t.followpos[p] = posSet{}
				}
				t.followpos[p].merge(n.right.first)
			}
		case nodeStar, nodePlus:
			for p := range n.last {
				if _, ok := t.followpos[p]; !ok {
					t.followpos[p] = posSet{}
				}
				t.followpos[p].merge(n.first)
			}
		}
	})

	t.tokenPos = disjointTokenSets(t.tokenPos)
	return t, nil
}

// disjointTokenSets partitions the leaf character classes into disjoint sets
// mapped to the same position sets, so one DFA transition can cover many
// input bytes. The end-marker keeps its own singleton entry.
func disjointTokenSets(original map[token]posSet) map[token]posSet {
	var charPos [256]posSet
	for tk, positions := range original {
		if tk.kind == tokenEndMark {
			continue
		}
		for ch := 0; ch < 256; ch++ {
			if tk.matches(byte(ch)) {
				if charPos[ch] == nil {
					charPos[ch] = posSet{}
				}
				charPos[ch].merge(positions)
			}
		}
	}

	type group struct {
		positions posSet
		chars     charSet
	}
	grouped := map[string]*group{}
	for ch := 0; ch < 256; ch++ {
		if charPos[ch] == nil {
			continue
		}
		sig := charPos[ch].signature()
		g, ok := grouped[sig]
		if !ok {
			g = &group{positions: charPos[ch]}
			grouped[sig] = g
		}
		g.chars.add(byte(ch))
	}

	result := map[token]posSet{}
	for _, g := range grouped {
		var only byte
		count := 0
		for ch := 0; ch < 256; ch++ {
			if g.chars.has(byte(ch)) {
				only = byte(ch)
				count++
			}
		}
		if count == 1 {
			result[newCharToken(only)] = g.positions
			continue
		}
		result[newClassToken(g.chars)] = g.positions
	}
	for tk, positions := range original {
		if tk.kind == tokenEndMark {
			result[tk] = positions
		}
	}
	return result
}
