package grammar

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousGrammar marks an LL(1) table conflict.
	ErrAmbiguousGrammar = errors.New("ambiguous grammar")

	// ErrInvalidGrammar marks malformed BNF text.
	ErrInvalidGrammar = errors.New("invalid grammar")

	// ErrConflict marks an SLR/LR(1) table conflict.
	ErrConflict = errors.New("grammar conflict")
)

// InvalidGrammarError reports malformed grammar text.
type InvalidGrammarError struct {
	Detail string
}

func (e *InvalidGrammarError) Error() string {
	return fmt.Sprintf("invalid grammar: %v", e.Detail)
}

func (e *InvalidGrammarError) Is(target error) bool {
	return target == ErrInvalidGrammar
}

// AmbiguityError reports two productions landing in the same LL(1) cell.
type AmbiguityError struct {
	Prods [2]Production
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous grammar: %v/ %v", e.Prods[0], e.Prods[1])
}

func (e *AmbiguityError) Is(target error) bool {
	return target == ErrAmbiguousGrammar
}

// ConflictError reports a shift/reduce or reduce/reduce collision in an LR
// table cell.
type ConflictError struct {
	State    int
	On       Symbol
	Existing Action
	New      Action
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict in state %v on %v: %v vs %v", e.State, e.On, e.Existing, e.New)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ParseError is the grammar-error raised when no table entry and no error
// handler applies to the current token.
type ParseError struct {
	Token  string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected token %v at line %v, column %v", e.Token, e.Line, e.Column)
}
