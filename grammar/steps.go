package grammar

import (
	"io"
	"strings"
)

// RightmostSteps records the sentential forms witnessed while the LR driver
// reduces, newest at the tail. Replayed backwards they read as the rightmost
// derivation of the input.
type RightmostSteps struct {
	symbols []Symbol
	steps   [][]Symbol
}

func newRightmostSteps(input []Symbol) *RightmostSteps {
	r := &RightmostSteps{
		symbols: append([]Symbol{}, input...),
	}
	r.addStep()
	return r
}

func (r *RightmostSteps) addStep() {
	r.steps = append(r.steps, append([]Symbol{}, r.symbols...))
}

// Add records a reduction by prod. ridx is the number of input tokens not
// yet consumed, end-marker included; it anchors the handle's position from
// the right end of the current sentential form.
func (r *RightmostSteps) Add(prod Production, ridx int) {
	if !prod.IsEpsilon() {
		n := len(prod.Rhs)
		i := len(r.symbols) - ridx - n + 1
		if i < 0 || i+n > len(r.symbols) {
			return
		}
		replaced := append([]Symbol{}, r.symbols[:i]...)
		replaced = append(replaced, prod.Lhs)
		replaced = append(replaced, r.symbols[i+n:]...)
		r.symbols = replaced
	} else {
		for j := len(r.symbols) - 1; j >= 0; j-- {
			if r.symbols[j].IsNonTerminal() {
				inserted := append([]Symbol{}, r.symbols[:j+1]...)
				inserted = append(inserted, prod.Lhs)
				inserted = append(inserted, r.symbols[j+1:]...)
				r.symbols = inserted
				break
			}
		}
	}
	r.addStep()
}

// InsertSymbol patches the current form and every recorded step, counting
// ridx from the right. Error handlers use it after synthesizing a missing
// token.
func (r *RightmostSteps) InsertSymbol(ridx int, sym Symbol) {
	at := func(form []Symbol) []Symbol {
		i := len(form) - ridx + 1
		if i < 0 || i > len(form) {
			return form
		}
		patched := append([]Symbol{}, form[:i]...)
		patched = append(patched, sym)
		patched = append(patched, form[i:]...)
		return patched
	}
	r.symbols = at(r.symbols)
	for i, step := range r.steps {
		r.steps[i] = at(step)
	}
}

func (r *RightmostSteps) String() string {
	var b strings.Builder
	for i := len(r.steps) - 1; i >= 0; i-- {
		for _, sym := range r.steps[i] {
			b.WriteString(sym.Name)
			b.WriteByte(' ')
		}
		if i > 0 {
			b.WriteString("=> \n")
		}
	}
	return b.String()
}

// Print writes the derivation, earliest form first.
func (r *RightmostSteps) Print(w io.Writer) {
	io.WriteString(w, r.String())
}
