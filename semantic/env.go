package semantic

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Env is the evaluation environment handed to every action: the error
// list, the scoped symbol table, the per-node symbol frames resolving names
// an action refers to, and the emit/temp/label facilities. A fresh Env is
// created per evaluation; actions must keep all mutable state here.
type Env struct {
	Errors []string
	Table  SymbolTable

	// Emitted collects emitted lines when no sink is installed.
	Emitted []string

	frames       []map[string]*Symbol
	emitSink     io.Writer
	tempCounter  int
	labelCounter int
}

func NewEnv() *Env {
	return &Env{}
}

// SetEmitSink directs emitted lines to a line-oriented text stream instead
// of the Emitted slice.
func (e *Env) SetEmitSink(w io.Writer) {
	e.emitSink = w
}

// Error appends a semantic error. Actions that detect structural problems
// record the error and return; the evaluator never aborts mid-walk.
func (e *Env) Error(msg string) {
	e.Errors = append(e.Errors, msg)
}

// Symbol resolves a name in the current production's frame. Repeated names
// are disambiguated as name<1>, name<2>, … in RHS order.
func (e *Env) Symbol(name string) *Symbol {
	frame := e.frames[len(e.frames)-1]
	sym, ok := frame[name]
	if !ok {
		tracer().Errorf("no symbol %v in current production", name)
		return &Symbol{Syn: map[string]string{}, Inh: map[string]string{}}
	}
	return sym
}

// EnterSymbolFrame pushes a fresh name-resolution frame for one tree node.
func (e *Env) EnterSymbolFrame() {
	e.frames = append(e.frames, map[string]*Symbol{})
}

// AddSymbol binds sym in the current frame, disambiguating repeats.
func (e *Env) AddSymbol(sym *Symbol) {
	frame := e.frames[len(e.frames)-1]
	if _, ok := frame[sym.Name]; !ok {
		frame[sym.Name] = sym
		return
	}
	cnt := 1
	for key := range frame {
		if strings.HasPrefix(key, sym.Name+"<") {
			cnt++
		}
	}
	frame[sym.Name+"<"+strconv.Itoa(cnt)+">"] = sym
}

// ExitSymbolFrame pops the current frame.
func (e *Env) ExitSymbolFrame() {
	e.frames = e.frames[:len(e.frames)-1]
}

// Temp yields a fresh temporary name. The counter is monotonic per parse.
func (e *Env) Temp() string {
	name := "__t" + strconv.Itoa(e.tempCounter)
	e.tempCounter++
	return name
}

// Label yields a fresh label name.
func (e *Env) Label() string {
	name := "L" + strconv.Itoa(e.labelCounter)
	e.labelCounter++
	return name
}

// Emit writes one line to the sink.
func (e *Env) Emit(line string) {
	if e.emitSink != nil {
		fmt.Fprintln(e.emitSink, line)
		return
	}
	e.Emitted = append(e.Emitted, line)
}
