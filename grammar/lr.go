package grammar

import (
	"fmt"
	"sort"

	"github.com/llipengda/parsekit/lexer"
)

type ActionType int

const (
	ActionShift ActionType = iota
	ActionReduce
	ActionAccept
	ActionError
)

// Action is one ACTION-table entry. Val is the target state for shifts, the
// production index for reduces, and the handler index for errors.
type Action struct {
	Type ActionType
	Val  int
}

func Shift(state int) Action {
	return Action{Type: ActionShift, Val: state}
}

func Reduce(prod int) Action {
	return Action{Type: ActionReduce, Val: prod}
}

func Accept() Action {
	return Action{Type: ActionAccept}
}

func ErrorAction(handler int) Action {
	return Action{Type: ActionError, Val: handler}
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("s%d", a.Val)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Val)
	case ActionAccept:
		return "acc"
	case ActionError:
		return fmt.Sprintf("e%d", a.Val)
	}
	return "?"
}

// ActionTable maps state and terminal (or end-marker) to an action; GotoTable
// maps state and non-terminal to the successor state. Symbols key by
// identity.
type ActionTable map[int]map[Key]Action

// GotoTable maps (state, non-terminal) to the successor state.
type GotoTable map[int]map[Key]int

func (t ActionTable) set(state int, k Key, act Action) {
	if t[state] == nil {
		t[state] = map[Key]Action{}
	}
	t[state][k] = act
}

func (t ActionTable) get(state int, k Key) (Action, bool) {
	act, ok := t[state][k]
	return act, ok
}

func (t GotoTable) set(state int, k Key, to int) {
	if t[state] == nil {
		t[state] = map[Key]int{}
	}
	t[state][k] = to
}

// StackEntry is a state or a symbol; LR stacks alternate the two.
type StackEntry struct {
	isState bool
	state   int
	sym     Symbol
}

func (e StackEntry) IsState() bool {
	return e.isState
}

func (e StackEntry) IsSymbol() bool {
	return !e.isState
}

func (e StackEntry) State() int {
	return e.state
}

func (e StackEntry) Symbol() Symbol {
	return e.sym
}

func (e StackEntry) String() string {
	if e.isState {
		return fmt.Sprintf("%d", e.state)
	}
	return e.sym.Name
}

// Stack is the LR parse stack. Error handlers receive it and may rewrite
// it.
type Stack struct {
	entries []StackEntry
}

func (s *Stack) PushState(state int) {
	s.entries = append(s.entries, StackEntry{isState: true, state: state})
}

func (s *Stack) PushSymbol(sym Symbol) {
	s.entries = append(s.entries, StackEntry{sym: sym})
}

func (s *Stack) Pop() StackEntry {
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e
}

func (s *Stack) Top() StackEntry {
	return s.entries[len(s.entries)-1]
}

func (s *Stack) Len() int {
	return len(s.entries)
}

// TopState returns the state on top of the stack. The driver maintains the
// invariant that a state is always on top between steps.
func (s *Stack) TopState() int {
	return s.entries[len(s.entries)-1].state
}

// ErrorHandler recovers from an error action: it may rewrite the stack,
// patch the pending input, advance the position, or log diagnostics.
type ErrorHandler func(stack *Stack, tokens *[]lexer.Token, pos *int)

// TableInitializer post-processes the tables after automaton construction;
// clients install error(k) entries and append the matching handlers.
type TableInitializer func(actions ActionTable, gotos GotoTable, handlers *[]ErrorHandler)

// itemStrategy is the capability set distinguishing SLR from canonical
// LR(1): initial item construction, closure expansion, and accept/reduce
// emission.
type itemStrategy interface {
	initialItems(g *LR) []lrItem
	closure(g *LR, set *itemSet)
	acceptReduce(g *LR, set *itemSet, idx int) error
}

// LR is a shift/reduce parser whose tables are built by an item strategy;
// NewSLR and NewLR1 select the variant. The grammar is augmented with
// S' -> S as production 0, and accepting is exactly "reduce by production 0
// on the end-marker".
type LR struct {
	grammarBase
	strategy itemStrategy

	// canonical productions for the item layer: epsilon RHS cleared
	lrProds []Production

	states     []*lrState
	actions    ActionTable
	gotos      GotoTable
	handlers   []ErrorHandler
	initTables TableInitializer

	steps *RightmostSteps
	built bool
}

func newLR(cfg *Config, prods []Production, strategy itemStrategy) (*LR, error) {
	if len(prods) == 0 {
		return nil, &InvalidGrammarError{Detail: "empty grammar"}
	}

	start := prods[0].Lhs

	// The augmented start symbol appends primes until the name is fresh;
	// grammars routinely use primed names (E') themselves.
	used := map[string]struct{}{}
	for _, prod := range prods {
		used[prod.Lhs.Name] = struct{}{}
		for _, sym := range prod.Rhs {
			used[sym.Name] = struct{}{}
		}
	}
	augName := start.Name + "'"
	for {
		if _, taken := used[augName]; !taken {
			break
		}
		augName += "'"
	}

	augmented := make([]Production, 0, len(prods)+1)
	augmented = append(augmented, Production{
		Lhs: Symbol{Kind: SymbolNonTerminal, Name: augName, Lexval: augName},
		Rhs: []Symbol{start},
	})
	augmented = append(augmented, prods...)

	g := &LR{strategy: strategy}
	g.init(cfg, augmented)

	g.lrProds = make([]Production, len(augmented))
	for i, prod := range augmented {
		canon := prod
		if prod.IsEpsilon() {
			canon.Rhs = nil
		}
		g.lrProds[i] = canon
	}
	return g, nil
}

// NewSLR builds an SLR(1) parser from BNF text.
func NewSLR(cfg *Config, text string) (*LR, error) {
	prods, err := ParseProductions(cfg, text)
	if err != nil {
		return nil, err
	}
	return newLR(cfg, prods, slrStrategy{})
}

// NewSLRFromProductions builds an SLR(1) parser from a production list.
func NewSLRFromProductions(cfg *Config, prods []Production) (*LR, error) {
	return newLR(cfg, prods, slrStrategy{})
}

// NewLR1 builds a canonical LR(1) parser from BNF text.
func NewLR1(cfg *Config, text string) (*LR, error) {
	prods, err := ParseProductions(cfg, text)
	if err != nil {
		return nil, err
	}
	return newLR(cfg, prods, lr1Strategy{})
}

// NewLR1FromProductions builds a canonical LR(1) parser from a production
// list.
func NewLR1FromProductions(cfg *Config, prods []Production) (*LR, error) {
	return newLR(cfg, prods, lr1Strategy{})
}

// InitErrorHandlers registers a callback run after the automaton is built;
// it may patch ACTION/GOTO and install error handlers.
func (g *LR) InitErrorHandlers(fn TableInitializer) {
	g.initTables = fn
}

// Steps returns the rightmost-derivation trace of the most recent Parse.
func (g *LR) Steps() *RightmostSteps {
	return g.steps
}

// ActionTable exposes the built ACTION table.
func (g *LR) ActionTable() ActionTable {
	return g.actions
}

// GotoTable exposes the built GOTO table.
func (g *LR) GotoTable() GotoTable {
	return g.gotos
}

// StateCount returns the number of automaton states.
func (g *LR) StateCount() int {
	return len(g.states)
}

func (g *LR) Build() error {
	if g.built {
		return nil
	}
	g.calcFirst()
	g.calcFollow()
	if err := g.buildAutomaton(); err != nil {
		return err
	}
	if g.initTables != nil {
		g.initTables(g.actions, g.gotos, &g.handlers)
	}
	g.built = true
	return nil
}

// item accessors against the canonical production list

func (g *LR) itemRhs(it lrItem) []Symbol {
	return g.lrProds[it.prod].Rhs
}

func (g *LR) isEnd(it lrItem) bool {
	return it.dot == len(g.itemRhs(it))
}

func (g *LR) symbolAfterDot(it lrItem) Symbol {
	return g.itemRhs(it)[it.dot]
}

func (g *LR) nextItem(it lrItem) lrItem {
	if it.dot < len(g.itemRhs(it)) {
		it.dot++
	}
	return it
}

func (g *LR) itemString(it lrItem) string {
	prod := g.lrProds[it.prod]
	var b []byte
	b = append(b, prod.Lhs.Name...)
	b = append(b, " -> "...)
	for i, sym := range prod.Rhs {
		if i == it.dot {
			b = append(b, "・"...)
		}
		b = append(b, sym.Name...)
		b = append(b, ' ')
	}
	if it.dot == len(prod.Rhs) {
		b = append(b, "・"...)
	}
	if it.lookahead != nil {
		b = append(b, ", "...)
		b = append(b, it.lookahead.Name...)
	}
	return string(b)
}

// closeState closes a kernel into a full state and records its after-dot
// symbol set.
func (g *LR) closeState(kernel []lrItem) *lrState {
	set := newItemSet()
	for _, it := range kernel {
		set.add(it)
	}
	g.strategy.closure(g, set)

	state := &lrState{items: set, afterDot: SymbolSet{}}
	for _, it := range set.ordered() {
		if !g.isEnd(it) {
			state.afterDot.add(g.symbolAfterDot(it))
		}
	}
	return state
}

func (g *LR) buildAutomaton() error {
	g.actions = ActionTable{}
	g.gotos = GotoTable{}
	g.states = nil

	intern := map[string]int{}

	state0 := g.closeState(g.strategy.initialItems(g))
	g.states = append(g.states, state0)
	intern[state0.items.signature()] = 0
	if err := g.strategy.acceptReduce(g, state0.items, 0); err != nil {
		return err
	}

	init, end := 0, 1
	for init != end {
		for i := init; i < end; i++ {
			for _, sym := range sortedSymbols(g.states[i].afterDot) {
				if err := g.moveDot(i, sym, intern); err != nil {
					return err
				}
			}
		}
		init = end
		end = len(g.states)
	}
	return nil
}

// moveDot forms the goto of state i on sym: the closed kernel of all items
// with sym after the dot. The target is interned by item-set content; a hit
// reuses the state id, a miss appends a new state and emits its accept and
// reduce entries.
func (g *LR) moveDot(i int, sym Symbol, intern map[string]int) error {
	var kernel []lrItem
	for _, it := range g.states[i].items.ordered() {
		if !g.isEnd(it) && g.symbolAfterDot(it).Equal(sym) {
			kernel = append(kernel, g.nextItem(it))
		}
	}
	if len(kernel) == 0 {
		return nil
	}

	state := g.closeState(kernel)
	sig := state.items.signature()
	to, known := intern[sig]
	if !known {
		to = len(g.states)
		g.states = append(g.states, state)
		intern[sig] = to
		if err := g.strategy.acceptReduce(g, state.items, to); err != nil {
			return err
		}
	}

	if sym.IsNonTerminal() {
		g.gotos.set(i, sym.Key(), to)
		return nil
	}
	if existing, ok := g.actions.get(i, sym.Key()); ok {
		return &ConflictError{State: i, On: sym, Existing: existing, New: Shift(to)}
	}
	g.actions.set(i, sym.Key(), Shift(to))
	return nil
}

func sortedSymbols(set SymbolSet) []Symbol {
	syms := make([]Symbol, 0, len(set))
	for _, sym := range set {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Kind != syms[j].Kind {
			return syms[i].Kind < syms[j].Kind
		}
		return syms[i].Name < syms[j].Name
	})
	return syms
}

// Parse runs the shift/reduce loop over the tokens with the end-marker
// appended. Reductions are logged and replayed in reverse into the tree on
// accept, followed by a terminal-backfill pass over the full token stream.
func (g *LR) Parse(tokens []lexer.Token) error {
	g.beginParse()

	in := make([]lexer.Token, 0, len(tokens)+1)
	in = append(in, tokens...)

	inputSyms := make([]Symbol, len(in))
	for i, tok := range in {
		inputSyms[i] = FromToken(g.cfg, tok)
	}
	g.steps = newRightmostSteps(inputSyms)

	in = append(in, lexer.Token{
		Type:  lexer.TypeUnknown,
		Name:  g.cfg.EndMarkStr,
		Value: g.cfg.EndMarkStr,
	})

	stack := &Stack{}
	stack.PushState(0)

	var output []Production
	pos := 0
	for pos < len(in) {
		cur := FromToken(g.cfg, in[pos])
		s := stack.TopState()

		act, ok := g.actions.get(s, cur.Key())
		if !ok {
			return &ParseError{Token: cur.Name, Line: cur.Line, Column: cur.Column}
		}
		tracer().Debugf("state %v, input %v: %v", s, cur.Name, act)

		switch act.Type {
		case ActionAccept:
			for i := len(output) - 1; i >= 0; i-- {
				g.tree.AddR(output[i])
			}
			for _, tok := range in {
				g.tree.UpdateR(FromToken(g.cfg, tok))
			}
			return nil

		case ActionShift:
			stack.PushSymbol(cur)
			stack.PushState(act.Val)
			pos++

		case ActionReduce:
			prod := g.prods[act.Val]
			r := len(prod.Rhs)
			if prod.IsEpsilon() {
				r = 0
			}
			for i := 0; i < r; i++ {
				stack.Pop()
				stack.Pop()
			}
			to, ok := g.gotos[stack.TopState()][prod.Lhs.Key()]
			if !ok {
				return fmt.Errorf("no goto from state %v on %v", stack.TopState(), prod.Lhs.Name)
			}
			stack.PushSymbol(prod.Lhs)
			stack.PushState(to)
			output = append(output, prod)
			g.steps.Add(prod, len(in)-pos)

		case ActionError:
			if act.Val >= len(g.handlers) {
				return &ParseError{Token: cur.Name, Line: cur.Line, Column: cur.Column}
			}
			g.handlers[act.Val](stack, &in, &pos)
		}
	}
	return nil
}
