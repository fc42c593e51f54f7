package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"mlab.dev/interp/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexSimple(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			"arithmetic",
			"2 + 3 * 4 - 1",
			[]token.Kind{token.Number, token.Plus, token.Number, token.Star,
				token.Number, token.Minus, token.Number, token.EOF},
		},
		{
			"matrix row comma injection",
			"[1 2 3]",
			[]token.Kind{token.LBracket, token.Number, token.Comma, token.Number,
				token.Comma, token.Number, token.RBracket, token.EOF},
		},
		{
			"binary plus keeps single element",
			"[1 + 2]",
			[]token.Kind{token.LBracket, token.Number, token.Plus, token.Number, token.RBracket, token.EOF},
		},
		{
			"unary plus splits elements",
			"[1 +2]",
			[]token.Kind{token.LBracket, token.Number, token.Comma, token.Plus, token.Number, token.RBracket, token.EOF},
		},
		{
			"transpose after identifier",
			"A'",
			[]token.Kind{token.Ident, token.Quote, token.EOF},
		},
		{
			"string after operator",
			"x = 'hi'",
			[]token.Kind{token.Ident, token.Assign, token.String, token.EOF},
		},
		{
			"newline row separator",
			"[1 2\n3 4]",
			[]token.Kind{token.LBracket, token.Number, token.Comma, token.Number,
				token.Semicolon, token.Number, token.Comma, token.Number, token.RBracket, token.EOF},
		},
		{
			"line continuation",
			"1 + ...\n2",
			[]token.Kind{token.Number, token.Plus, token.Number, token.EOF},
		},
		{
			"line comment",
			"1 % comment\n2",
			[]token.Kind{token.Number, token.Newline, token.Number, token.EOF},
		},
		{
			"imaginary suffix",
			"3i + 4j",
			[]token.Kind{token.Imaginary, token.Plus, token.Imaginary, token.EOF},
		},
		{
			"hex and binary literals",
			"0xFF + 0b101",
			[]token.Kind{token.Number, token.Plus, token.Number, token.EOF},
		},
		{
			"digit group underscores",
			"1_000_000",
			[]token.Kind{token.Number, token.EOF},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks, err := Lex("[test]", test.src)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", test.src, err)
			}
			if diff := cmp.Diff(test.want, kinds(toks)); diff != "" {
				t.Errorf("Lex(%q) kinds mismatch:\n%s", test.src, diff)
			}
		})
	}
}

func TestLexNumberLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"123", "123"},
		{"1_000", "1000"},
		{"0xFF", "0xFF"},
		{"0b101", "0b101"},
		{".5", ".5"},
		{"1.5e10", "1.5e10"},
	}
	for _, test := range tests {
		toks, err := Lex("[test]", test.src)
		if err != nil {
			t.Fatalf("Lex(%q) error: %v", test.src, err)
		}
		if toks[0].Lit != test.want {
			t.Errorf("Lex(%q)[0].Lit = %q, want %q", test.src, toks[0].Lit, test.want)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []string{
		"'unterminated",
		"\"unterminated",
		"[1, 2",
		"1)",
		"1__000",
		"%{\nunterminated block comment",
	}
	for _, src := range tests {
		if _, err := Lex("[test]", src); err == nil {
			t.Errorf("Lex(%q) want error, got nil", src)
		}
	}
}
