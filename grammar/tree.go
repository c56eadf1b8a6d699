package grammar

import (
	"fmt"
	"io"
)

// Node is one parse-tree node. Children are owned; Parent is a non-owning
// back reference. An internal node that has not been expanded yet has no
// children.
type Node struct {
	Symbol   *Symbol
	Children []*Node
	Parent   *Node
}

// Tree materializes a parse tree from a derivation. Two cursors are
// maintained during construction: next points at the leftmost unexpanded
// non-terminal (top-down order, used by LL), nextR at the rightmost
// (bottom-up order, used by the LR accept path). Both orders produce the
// same tree for the same derivation.
type Tree struct {
	root  *Node
	next  *Node
	nextR *Node

	toReplace   []*Symbol
	replaceRIdx int
}

func NewTree() *Tree {
	return &Tree{}
}

func (t *Tree) Root() *Node {
	return t.root
}

// Add expands the leftmost unexpanded non-terminal with prod, creating the
// root on the first call. Terminal children are queued for backfill by
// Update.
func (t *Tree) Add(prod Production) {
	if t.root == nil {
		lhs := prod.Lhs
		t.root = &Node{Symbol: &lhs}
		t.spawn(t.root, prod)
		return
	}
	if t.next == nil || t.next.Symbol == nil || !t.next.Symbol.Equal(prod.Lhs) {
		tracer().Errorf("tree: add of %v does not expand cursor", prod)
		return
	}
	t.spawn(t.next, prod)
}

// AddR expands the rightmost unexpanded non-terminal with prod.
func (t *Tree) AddR(prod Production) {
	if t.root == nil {
		lhs := prod.Lhs
		t.root = &Node{Symbol: &lhs}
		t.spawnR(t.root, prod)
		return
	}
	if t.nextR == nil || t.nextR.Symbol == nil || !t.nextR.Symbol.Equal(prod.Lhs) {
		tracer().Errorf("tree: add_r of %v does not expand cursor", prod)
		return
	}
	t.spawnR(t.nextR, prod)
}

func (t *Tree) spawn(parent *Node, prod Production) {
	var terminals []*Symbol
	var newNext *Node
	for _, rhs := range prod.Rhs {
		sym := rhs
		node := &Node{Symbol: &sym, Parent: parent}
		parent.Children = append(parent.Children, node)
		if sym.IsTerminal() && !sym.IsEpsilon() {
			terminals = append(terminals, node.Symbol)
		}
		if newNext == nil && sym.IsNonTerminal() {
			newNext = node
		}
	}
	for i := len(terminals) - 1; i >= 0; i-- {
		t.toReplace = append(t.toReplace, terminals[i])
	}

	if parent == t.root && t.next == nil && t.nextR == nil {
		// First expansion: seed both cursors.
		t.next = newNext
		for i := len(parent.Children) - 1; i >= 0; i-- {
			if parent.Children[i].Symbol.IsNonTerminal() {
				t.nextR = parent.Children[i]
				break
			}
		}
		return
	}

	if newNext != nil {
		t.next = newNext
		return
	}
	t.advanceNext()
}

func (t *Tree) advanceNext() {
	cur := t.next.Parent
	for cur != nil {
		for _, child := range cur.Children {
			if child.Symbol != nil && child.Symbol.IsNonTerminal() && len(child.Children) == 0 {
				t.next = child
				return
			}
		}
		cur = cur.Parent
	}
	t.next = nil
}

func (t *Tree) spawnR(parent *Node, prod Production) {
	for _, rhs := range prod.Rhs {
		sym := rhs
		node := &Node{Symbol: &sym, Parent: parent}
		parent.Children = append(parent.Children, node)
	}

	for i := len(parent.Children) - 1; i >= 0; i-- {
		if parent.Children[i].Symbol.IsNonTerminal() {
			t.nextR = parent.Children[i]
			return
		}
	}
	t.advanceNextR(parent)
}

func (t *Tree) advanceNextR(from *Node) {
	cur := from.Parent
	for cur != nil {
		for i := len(cur.Children) - 1; i >= 0; i-- {
			child := cur.Children[i]
			if child.Symbol != nil && child.Symbol.IsNonTerminal() && len(child.Children) == 0 {
				t.nextR = child
				return
			}
		}
		cur = cur.Parent
	}
	t.nextR = nil
}

// Update backfills the most recently queued terminal with a matched input
// symbol. Called by the LL driver after each match.
func (t *Tree) Update(sym Symbol) {
	if len(t.toReplace) == 0 {
		return
	}
	back := t.toReplace[len(t.toReplace)-1]
	if sym.Equal(*back) {
		back.UpdateFrom(sym)
		t.toReplace = t.toReplace[:len(t.toReplace)-1]
	}
}

// UpdateR backfills terminals left to right. The terminal frontier is
// computed lazily on the first call, after the AddR replay is complete.
func (t *Tree) UpdateR(sym Symbol) {
	if len(t.toReplace) == 0 {
		t.Visit(func(n *Node) {
			if n.Symbol != nil && n.Symbol.IsTerminal() && !n.Symbol.IsEpsilon() {
				t.toReplace = append(t.toReplace, n.Symbol)
			}
		})
	}
	if t.replaceRIdx >= len(t.toReplace) {
		return
	}
	ori := t.toReplace[t.replaceRIdx]
	if sym.Equal(*ori) {
		ori.UpdateFrom(sym)
		t.replaceRIdx++
	}
}

// Visit walks the tree in pre-order.
func (t *Tree) Visit(fn func(*Node)) {
	visitNode(t.root, fn)
}

func visitNode(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		visitNode(child, fn)
	}
}

// Print renders the tree with ruled lines.
func (t *Tree) Print(w io.Writer) {
	printNode(w, t.root, "", "")
}

func printNode(w io.Writer, node *Node, ruledLine string, childPrefix string) {
	if node == nil {
		return
	}

	label := ""
	if node.Symbol != nil {
		label = node.Symbol.Name
		if node.Symbol.Lexval != "" && node.Symbol.Lexval != node.Symbol.Name {
			label = fmt.Sprintf("%v %#v", node.Symbol.Name, node.Symbol.Lexval)
		}
	}
	fmt.Fprintf(w, "%v%v\n", ruledLine, label)

	num := len(node.Children)
	for i, child := range node.Children {
		line := "└─ "
		if num > 1 && i < num-1 {
			line = "├─ "
		}
		prefix := "│  "
		if i >= num-1 {
			prefix = "   "
		}
		printNode(w, child, childPrefix+line, childPrefix+prefix)
	}
}
