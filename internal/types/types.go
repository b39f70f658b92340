// Package types implements Vex's small type system: a discriminated union
// of primitive kinds plus the ARRAY and FUNCTION compound kinds.
//
// Types are values: Clone produces an independent copy suitable for storing
// in a symbols.Symbol, so freeing an AST node's type never invalidates a
// symbol table entry and vice versa (§3 of SPEC_FULL.md).
package types

import "strings"

// Kind discriminates the primitive/compound type tags.
type Kind int

const (
	INT Kind = iota
	LONG
	DOUBLE
	CHAR
	STRING
	BOOL
	VOID
	NIL
	ARRAY
	FUNCTION
)

func (k Kind) String() string {
	switch k {
	case INT:
		return "int"
	case LONG:
		return "long"
	case DOUBLE:
		return "double"
	case CHAR:
		return "char"
	case STRING:
		return "str"
	case BOOL:
		return "bool"
	case VOID:
		return "void"
	case NIL:
		return "nil"
	case ARRAY:
		return "array"
	case FUNCTION:
		return "fn"
	default:
		return "?"
	}
}

// Type is implemented by every primitive and compound type value.
type Type interface {
	Kind() Kind
	// Clone returns an independent deep copy of the type.
	Clone() Type
	// Equals reports structural equality.
	Equals(other Type) bool
	String() string
}

// Primitive is a flyweight-eligible value type for the non-compound kinds.
type Primitive struct {
	kind Kind
}

func (p Primitive) Kind() Kind     { return p.kind }
func (p Primitive) Clone() Type    { return p }
func (p Primitive) String() string { return p.kind.String() }

func (p Primitive) Equals(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o.kind == p.kind
}

// Flyweight primitive instances. Because Primitive carries no pointer
// state, sharing these values across AST and symbol-table sites is safe;
// Clone still returns a value copy for API uniformity with compound types.
var (
	Int    Type = Primitive{INT}
	Long   Type = Primitive{LONG}
	Double Type = Primitive{DOUBLE}
	Char   Type = Primitive{CHAR}
	Str    Type = Primitive{STRING}
	Bool   Type = Primitive{BOOL}
	Void   Type = Primitive{VOID}
	Nil    Type = Primitive{NIL}
)

// ArrayType is Vex's compound ARRAY(element) kind. Per spec.md §9, arrays
// are parsed and type-checked to this shape but the code generator never
// materialises real array storage — it emits a stub value.
type ArrayType struct {
	Element Type
}

func (a *ArrayType) Kind() Kind { return ARRAY }

func (a *ArrayType) Clone() Type {
	return &ArrayType{Element: a.Element.Clone()}
}

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && a.Element.Equals(o.Element)
}

func (a *ArrayType) String() string {
	return "[" + a.Element.String() + "]"
}

// FunctionType is the compound FUNCTION(return, params...) kind.
type FunctionType struct {
	Return Type
	Params []Type
}

func (f *FunctionType) Kind() Kind { return FUNCTION }

func (f *FunctionType) Clone() Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Clone()
	}
	return &FunctionType{Return: f.Return.Clone(), Params: params}
}

func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(o.Params) != len(f.Params) || !f.Return.Equals(o.Return) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

func (f *FunctionType) String() string {
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") ")
	b.WriteString(f.Return.String())
	return b.String()
}

// FromKeyword resolves a primitive type-annotation keyword ("int", "str",
// ...) to its Type value. ok is false for unrecognised spellings.
func FromKeyword(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "long":
		return Long, true
	case "double":
		return Double, true
	case "char":
		return Char, true
	case "str":
		return Str, true
	case "bool":
		return Bool, true
	case "void":
		return Void, true
	default:
		return nil, false
	}
}

// IsNumeric reports whether a type participates in arithmetic operators.
func IsNumeric(t Type) bool {
	switch t.Kind() {
	case INT, LONG, DOUBLE:
		return true
	default:
		return false
	}
}

// SlotWidth is the uniform stack slot size in bytes for every symbol,
// regardless of declared type (§4.3: doubles are bit-reinterpreted for
// transport, so they still occupy one full 64-bit slot).
const SlotWidth = 8
