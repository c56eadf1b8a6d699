package semantic

import (
	"fmt"
	"io"

	"github.com/llipengda/parsekit/grammar"
)

// Node is one node of the semantic tree: either a symbol (with attribute
// maps) or an action, ordered among its siblings the way the production
// interleaves them.
type Node struct {
	Symbol   *Symbol
	Action   Action
	Children []*Node
	Parent   *Node
}

func (n *Node) IsAction() bool {
	return n.Action != nil
}

func (n *Node) IsSymbol() bool {
	return n.Symbol != nil
}

// Tree is the action-bearing counterpart of grammar.Tree. It implements
// grammar.SyntaxTree, so the recognizers drive it transparently; expanding a
// node spawns its production's action children alongside the symbol
// children, and the cursor and backfill logic consider symbols only.
type Tree struct {
	prodMap map[string]Production

	root  *Node
	next  *Node
	nextR *Node

	toReplace   []*Symbol
	replaceRIdx int
}

var _ grammar.SyntaxTree = &Tree{}

// NewTree indexes the semantic productions by their underlying grammar
// rule.
func NewTree(prods []Production) *Tree {
	t := &Tree{prodMap: map[string]Production{}}
	for _, prod := range prods {
		t.prodMap[prod.Production().String()] = prod
	}
	return t
}

func (t *Tree) Root() *Node {
	return t.root
}

// lookup finds the semantic production for a grammar rule. Synthesized
// productions that have no semantic counterpart (LL recovery) fall back to
// a plain symbol-only expansion.
func (t *Tree) lookup(prod grammar.Production) Production {
	if sp, ok := t.prodMap[prod.String()]; ok {
		return sp
	}
	sp := Production{Lhs: &Symbol{Symbol: prod.Lhs, Syn: map[string]string{}, Inh: map[string]string{}}}
	for _, sym := range prod.Rhs {
		sp.Rhs = append(sp.Rhs, RHSValue{Sym: &Symbol{Symbol: sym, Syn: map[string]string{}, Inh: map[string]string{}}})
	}
	return sp
}

func (t *Tree) Add(prod grammar.Production) {
	sp := t.lookup(prod)
	if t.root == nil {
		t.root = &Node{Symbol: sp.Lhs.clone()}
		t.spawn(t.root, sp)
		return
	}
	if t.next == nil || !t.next.IsSymbol() || !t.next.Symbol.Equal(prod.Lhs) {
		tracer().Errorf("tree: add of %v does not expand cursor", prod)
		return
	}
	t.spawn(t.next, sp)
}

func (t *Tree) AddR(prod grammar.Production) {
	sp := t.lookup(prod)
	if t.root == nil {
		t.root = &Node{Symbol: sp.Lhs.clone()}
		t.spawnR(t.root, sp)
		return
	}
	if t.nextR == nil || !t.nextR.IsSymbol() || !t.nextR.Symbol.Equal(prod.Lhs) {
		tracer().Errorf("tree: add_r of %v does not expand cursor", prod)
		return
	}
	t.spawnR(t.nextR, sp)
}

func (t *Tree) spawn(parent *Node, sp Production) {
	var terminals []*Symbol
	var newNext *Node
	for _, rhs := range sp.Rhs {
		node := &Node{Parent: parent}
		if rhs.IsSymbol() {
			node.Symbol = rhs.Sym.clone()
		} else {
			node.Action = rhs.Act
		}
		parent.Children = append(parent.Children, node)
		if !node.IsSymbol() {
			continue
		}
		if node.Symbol.IsTerminal() && !node.Symbol.IsEpsilon() {
			terminals = append(terminals, node.Symbol)
		}
		if newNext == nil && node.Symbol.IsNonTerminal() {
			newNext = node
		}
	}
	for i := len(terminals) - 1; i >= 0; i-- {
		t.toReplace = append(t.toReplace, terminals[i])
	}

	if parent == t.root && t.next == nil && t.nextR == nil {
		t.next = newNext
		for i := len(parent.Children) - 1; i >= 0; i-- {
			child := parent.Children[i]
			if child.IsSymbol() && child.Symbol.IsNonTerminal() {
				t.nextR = child
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
			if child.IsSymbol() && child.Symbol.IsNonTerminal() && len(child.Children) == 0 {
				t.next = child
				return
			}
		}
		cur = cur.Parent
	}
	t.next = nil
}

func (t *Tree) spawnR(parent *Node, sp Production) {
	for _, rhs := range sp.Rhs {
		node := &Node{Parent: parent}
		if rhs.IsSymbol() {
			node.Symbol = rhs.Sym.clone()
		} else {
			node.Action = rhs.Act
		}
		parent.Children = append(parent.Children, node)
	}

	for i := len(parent.Children) - 1; i >= 0; i-- {
		child := parent.Children[i]
		if child.IsSymbol() && child.Symbol.IsNonTerminal() {
			t.nextR = child
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
			if child.IsSymbol() && child.Symbol.IsNonTerminal() && len(child.Children) == 0 {
				t.nextR = child
				return
			}
		}
		cur = cur.Parent
	}
	t.nextR = nil
}

func (t *Tree) Update(sym grammar.Symbol) {
	if len(t.toReplace) == 0 {
		return
	}
	back := t.toReplace[len(t.toReplace)-1]
	if sym.Equal(back.Symbol) {
		back.UpdateFrom(sym)
		t.toReplace = t.toReplace[:len(t.toReplace)-1]
	}
}

func (t *Tree) UpdateR(sym grammar.Symbol) {
	if len(t.toReplace) == 0 {
		t.visit(t.root, func(n *Node) {
			if n.IsSymbol() && n.Symbol.IsTerminal() && !n.Symbol.IsEpsilon() {
				t.toReplace = append(t.toReplace, n.Symbol)
			}
		})
	}
	if t.replaceRIdx >= len(t.toReplace) {
		return
	}
	ori := t.toReplace[t.replaceRIdx]
	if sym.Equal(ori.Symbol) {
		ori.UpdateFrom(sym)
		t.replaceRIdx++
	}
}

// Visit walks the tree in pre-order.
func (t *Tree) Visit(fn func(*Node)) {
	t.visit(t.root, fn)
}

func (t *Tree) visit(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		t.visit(child, fn)
	}
}

// Calc evaluates the tree into a fresh environment.
func (t *Tree) Calc() *Env {
	env := NewEnv()
	t.CalcInto(env)
	return env
}

// CalcInto walks the tree depth-first left-to-right: entering an expanded
// symbol node pushes a frame binding the LHS and every RHS symbol by name,
// action children fire in order, and leaving pops the frame.
func (t *Tree) CalcInto(env *Env) {
	t.calcNode(t.root, env)
}

func (t *Tree) calcNode(n *Node, env *Env) {
	if n == nil {
		return
	}
	if n.IsAction() {
		n.Action(env)
		return
	}
	if len(n.Children) == 0 {
		return
	}
	env.EnterSymbolFrame()
	env.AddSymbol(n.Symbol)
	for _, child := range n.Children {
		if child.IsSymbol() {
			env.AddSymbol(child.Symbol)
		}
	}
	for _, child := range n.Children {
		t.calcNode(child, env)
	}
	env.ExitSymbolFrame()
}

// Print renders the tree with ruled lines; action nodes print as
// "[action]".
func (t *Tree) Print(w io.Writer) {
	printNode(w, t.root, "", "")
}

func printNode(w io.Writer, node *Node, ruledLine string, childPrefix string) {
	if node == nil {
		return
	}

	label := "[action]"
	if node.IsSymbol() {
		label = node.Symbol.String()
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
