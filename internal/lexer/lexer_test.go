package lexer

import (
	"testing"

	"github.com/vexlang/vexc/internal/token"
)

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := "var x: int = 5\nx = x + 10\n"

	tests := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.KW_INT, "int"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.NEWLINE, ""},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.EOF, ""},
		{token.EOF, ""},
	}

	l := New("test.vx", input)
	for i, tt := range tests {
		tok := l.ScanNext()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (lexeme=%q)", i, tt.kind, tok.Kind, tok.Lexeme)
		}
		if tt.lexeme != "" && tok.Lexeme != tt.lexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestKeywordsAndTypes(t *testing.T) {
	input := "fn var return if else for while import nil int long double char str bool void true false"

	tests := []token.Kind{
		token.FN, token.VAR, token.RETURN, token.IF, token.ELSE, token.FOR, token.WHILE,
		token.IMPORT, token.NIL, token.KW_INT, token.KW_LONG, token.KW_DOUBLE, token.KW_CHAR,
		token.KW_STR, token.KW_BOOL, token.KW_VOID, token.TRUE, token.FALSE,
	}

	l := New("test.vx", input)
	for i, want := range tests {
		tok := l.ScanNext()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, want, tok.Kind)
		}
	}
}

func TestIndentationEmitsIndentDedent(t *testing.T) {
	input := "fn main(): void =>\n    print(1)\nfn other(): void =>\n    print(2)\n"

	var kinds []token.Kind
	l := New("test.vx", input)
	for {
		tok := l.ScanNext()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}

	indentCount, dedentCount := 0, 0
	for _, k := range kinds {
		switch k {
		case token.INDENT:
			indentCount++
		case token.DEDENT:
			dedentCount++
		}
	}
	if indentCount != 2 {
		t.Errorf("expected 2 INDENT tokens, got %d", indentCount)
	}
	if dedentCount != 2 {
		t.Errorf("expected 2 DEDENT tokens, got %d", dedentCount)
	}
}

func TestNumberLiteralsAndLongSuffix(t *testing.T) {
	input := "42 3.14 100L"

	l := New("test.vx", input)

	tok := l.ScanNext()
	if tok.Kind != token.INT || tok.Literal.Int != 42 {
		t.Fatalf("expected INT(42), got %s(%v)", tok.Kind, tok.Literal)
	}
	tok = l.ScanNext()
	if tok.Kind != token.DOUBLE || tok.Literal.Double != 3.14 {
		t.Fatalf("expected DOUBLE(3.14), got %s(%v)", tok.Kind, tok.Literal)
	}
	tok = l.ScanNext()
	if tok.Kind != token.LONG || tok.Literal.Int != 100 {
		t.Fatalf("expected LONG(100), got %s(%v)", tok.Kind, tok.Literal)
	}
}

func TestStringAndInterpolatedStringLiterals(t *testing.T) {
	input := `"hello" $"x is {1 + 2}"`

	l := New("test.vx", input)

	tok := l.ScanNext()
	if tok.Kind != token.STRING || tok.Literal.Str != "hello" {
		t.Fatalf("expected STRING(hello), got %s(%q)", tok.Kind, tok.Literal.Str)
	}

	tok = l.ScanNext()
	if tok.Kind != token.INTERPOL_STRING {
		t.Fatalf("expected INTERPOL_STRING, got %s", tok.Kind)
	}
	if tok.Literal.Str != "x is {1 + 2}" {
		t.Fatalf("expected raw unsplit payload, got %q", tok.Literal.Str)
	}
}

func TestCharLiteralWithEscape(t *testing.T) {
	l := New("test.vx", `'\n'`)
	tok := l.ScanNext()
	if tok.Kind != token.CHAR || tok.Literal.Char != '\n' {
		t.Fatalf("expected CHAR(\\n), got %s(%q)", tok.Kind, tok.Literal.Char)
	}
}

func TestIllegalUTF8RecordsError(t *testing.T) {
	l := New("test.vx", "\x80\x80")
	for {
		tok := l.ScanNext()
		if tok.Kind == token.EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected at least one recorded lexer error for invalid UTF-8")
	}
}
