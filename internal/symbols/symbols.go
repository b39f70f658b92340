// Package symbols implements scope-nested name resolution and the x86-64
// System V frame-offset assignment policy described in SPEC_FULL.md §4.3.
package symbols

import (
	"github.com/vexlang/vexc/internal/token"
	"github.com/vexlang/vexc/internal/types"
)

// Kind classifies where a Symbol's storage lives.
type Kind int

const (
	GLOBAL Kind = iota
	LOCAL
	PARAM
)

func (k Kind) String() string {
	switch k {
	case GLOBAL:
		return "global"
	case LOCAL:
		return "local"
	case PARAM:
		return "param"
	default:
		return "?"
	}
}

// x86-64 System V frame layout constants (§4.3). All values occupy a full
// 64-bit slot regardless of declared size; doubles are bit-reinterpreted
// for transport.
const (
	ParamBaseOffset = 16
	LocalBaseOffset = 8
	OffsetStep      = types.SlotWidth
)

// Symbol is one resolved name: its declared type (an independent deep
// clone, never shared with the AST node that introduced it), storage kind,
// and — for LOCAL/PARAM — its frame offset from RBP.
type Symbol struct {
	Name   string
	Type   types.Type
	Kind   Kind
	Offset int // meaningful only for LOCAL/PARAM
	next   *Symbol
}

// sameName compares identifier tokens/strings by content, per spec.md §4.3.
func sameName(a, b string) bool {
	return a == b
}

// Scope is a singly-linked list of Symbols plus the pair of running offset
// counters used to place LOCAL and PARAM symbols as they are declared.
type Scope struct {
	enclosing        *Scope
	head             *Symbol
	nextLocalOffset  int
	nextParamOffset  int
}

func newScope(enclosing *Scope) *Scope {
	return &Scope{
		enclosing:       enclosing,
		nextLocalOffset: LocalBaseOffset,
		nextParamOffset: ParamBaseOffset,
	}
}

// DefineLocal adds a LOCAL symbol to this scope, consuming and advancing
// the local-offset counter, and returns the assigned symbol.
func (s *Scope) DefineLocal(name string, t types.Type) *Symbol {
	sym := &Symbol{Name: name, Type: t.Clone(), Kind: LOCAL, Offset: s.nextLocalOffset, next: s.head}
	s.nextLocalOffset += OffsetStep
	s.head = sym
	return sym
}

// DefineParam adds a PARAM symbol to this scope, consuming and advancing
// the param-offset counter.
func (s *Scope) DefineParam(name string, t types.Type) *Symbol {
	sym := &Symbol{Name: name, Type: t.Clone(), Kind: PARAM, Offset: s.nextParamOffset, next: s.head}
	s.nextParamOffset += OffsetStep
	s.head = sym
	return sym
}

// DefineGlobal adds a GLOBAL symbol; globals carry no meaningful offset.
func (s *Scope) DefineGlobal(name string, t types.Type) *Symbol {
	sym := &Symbol{Name: name, Type: t.Clone(), Kind: GLOBAL, next: s.head}
	s.head = sym
	return sym
}

// LookupLocal searches only this scope, for duplicate-declaration checks.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	for sym := s.head; sym != nil; sym = sym.next {
		if sameName(sym.Name, name) {
			return sym, true
		}
	}
	return nil, false
}

// OwnSymbols returns the symbols declared directly in this scope, in
// declaration order, for codegen's per-scope STRING-free emission (§4.5).
func (s *Scope) OwnSymbols() []*Symbol {
	var out []*Symbol
	for sym := s.head; sym != nil; sym = sym.next {
		out = append(out, sym)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NextLocalOffset reports the next local slot this scope would assign,
// used by codegen's stack-usage pre-pass (§4.4).
func (s *Scope) NextLocalOffset() int { return s.nextLocalOffset }

// ResetLocalOffset rewinds the local counter to the scope's base. Codegen
// does not call it: its pre-pass runs in a scope of its own that it pops,
// and the emission walk opens a fresh function scope.
func (s *Scope) ResetLocalOffset() { s.nextLocalOffset = LocalBaseOffset }

// Table owns the chain of active Scopes and a current-scope pointer.
// Function declarations push a distinct function scope whose offset
// counters start fresh (BeginFunctionScope); plain blocks just nest.
type Table struct {
	current *Scope
}

// NewTable creates a symbol table with a single global scope.
func NewTable() *Table {
	return &Table{current: newScope(nil)}
}

// PushScope opens a nested scope with its own offset counters, starting
// at LocalBaseOffset/ParamBaseOffset regardless of how far the enclosing
// scope's counters have advanced; callers needing contiguous-with-parent
// allocation continue from the parent's current counters explicitly via
// PushScopeContinuing.
func (t *Table) PushScope() *Scope {
	s := newScope(t.current)
	t.current = s
	return s
}

// PushScopeContinuing opens a nested scope whose offset counters continue
// from the enclosing scope's current counters, matching the branch-max
// stack policy adopted in SPEC_FULL.md §4.4 (sibling branches reuse the
// same slot range; nested sequential declarations keep advancing).
func (t *Table) PushScopeContinuing() *Scope {
	s := newScope(t.current)
	s.nextLocalOffset = t.current.nextLocalOffset
	s.nextParamOffset = t.current.nextParamOffset
	t.current = s
	return s
}

// PopScope destroys the current scope (its Symbols become unreachable)
// and returns to the enclosing scope.
func (t *Table) PopScope() {
	if t.current.enclosing != nil {
		t.current = t.current.enclosing
	}
}

// BeginFunctionScope pushes a function-level scope with offset counters
// reset to their base values, so each function's frame is independent.
func (t *Table) BeginFunctionScope() *Scope {
	s := newScope(t.current)
	t.current = s
	return s
}

// EndFunctionScope pops the function scope.
func (t *Table) EndFunctionScope() { t.PopScope() }

// Current returns the innermost active scope.
func (t *Table) Current() *Scope { return t.current }

// Define adds name at the current scope with the given kind.
func (t *Table) Define(name string, ty types.Type, kind Kind) *Symbol {
	switch kind {
	case PARAM:
		return t.current.DefineParam(name, ty)
	case LOCAL:
		return t.current.DefineLocal(name, ty)
	default:
		return t.current.DefineGlobal(name, ty)
	}
}

// Lookup walks from the innermost scope outward, returning the first match.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for s := t.current; s != nil; s = s.enclosing {
		if sym, ok := s.LookupLocal(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupCurrent restricts the search to the current scope only, for
// duplicate-declaration checks. The parser does not call it, so duplicate
// declarations are not diagnosed.
func (t *Table) LookupCurrent(name string) (*Symbol, bool) {
	return t.current.LookupLocal(name)
}

// NameToken is a small helper so callers can Define/Lookup directly from a
// token.Token without re-deriving the lexeme each time.
func NameToken(tok token.Token) string { return tok.Lexeme }
