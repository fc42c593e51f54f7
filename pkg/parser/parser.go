// Package parser builds the AST spec §3.2 describes out of a lexed
// token sequence, implementing MATLAB operator precedence, the
// multi-assignment lookahead, matrix/cell row structure, and the
// function-definition grammar of spec §4.2.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"mlab.dev/interp/pkg/ast"
	"mlab.dev/interp/pkg/diag"
	"mlab.dev/interp/pkg/lexer"
	"mlab.dev/interp/pkg/token"
)

type parser struct {
	name string
	src  string
	toks []token.Token
	pos  int
}

// Parse lexes and parses src, returning a single root Block node
// whose children are the top-level statements (spec §4.2's contract).
func Parse(name, src string) (result *ast.Node, err error) {
	toks, lexErr := lexer.Lex(name, src)
	if lexErr != nil {
		return nil, lexErr
	}
	p := &parser{name: name, src: src, toks: toks}

	// Deep recursive descent raises a parse error by panicking with a
	// *Error built from the offending token; recover it here rather
	// than threading an error return through every parse* method.
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*Error); ok {
				err = perr
				return
			}
			panic(r)
		}
	}()

	block := p.parseBlock()
	if p.cur().Kind != token.EOF {
		return nil, p.errf(p.cur(), "unexpected token %v", p.cur().Kind)
	}
	return block, nil
}

// --- token stream primitives ---

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) save() int         { return p.pos }
func (p *parser) restore(mark int)  { p.pos = mark }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *parser) expect(kind token.Kind) (token.Token, error) {
	if !p.at(kind) {
		return token.Token{}, p.errf(p.cur(), "expected %v, got %v", kind, p.cur().Kind)
	}
	return p.advance(), nil
}

func (p *parser) errf(t token.Token, format string, args ...interface{}) error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(p.name, p.src, diag.Ranging{From: t.Pos, To: t.End}),
	}
}

func rangeOf(from, to token.Token) diag.Ranging {
	return diag.Ranging{From: from.Pos, To: to.End}
}

// skipSeparators consumes a run of Newline/Comma/Semicolon tokens
// (blank statements, blank lines).
func (p *parser) skipSeparators() {
	for p.at(token.Newline) || p.at(token.Comma) || p.at(token.Semicolon) {
		p.advance()
	}
}

func isBlockStop(k token.Kind, stops []token.Kind) bool {
	if k == token.EOF {
		return true
	}
	for _, s := range stops {
		if k == s {
			return true
		}
	}
	return false
}

// --- statements ---

func (p *parser) parseBlock(stops ...token.Kind) *ast.Node {
	start := p.cur()
	var children []*ast.Node
	p.skipSeparators()
	for !isBlockStop(p.cur().Kind, stops) {
		stmt := p.parseStatement()
		if stmt != nil {
			children = append(children, stmt)
		}
		p.skipSeparators()
	}
	end := start
	if len(children) > 0 {
		end = token.Token{Pos: children[len(children)-1].To, End: children[len(children)-1].To}
	}
	return &ast.Node{Kind: ast.Block, Children: children, Ranging: rangeOf(start, end)}
}

func (p *parser) parseStatement() *ast.Node {
	switch p.cur().Kind {
	case token.If:
		return p.parseIf()
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	case token.Switch:
		return p.parseSwitch()
	case token.Try:
		return p.parseTry()
	case token.Function:
		return p.parseFuncDef()
	case token.Break:
		return p.simpleKeyword(ast.Break)
	case token.Continue:
		return p.simpleKeyword(ast.Continue)
	case token.Return:
		return p.simpleKeyword(ast.Return)
	case token.Global:
		return p.parseDecl(ast.GlobalDecl)
	case token.Persistent:
		return p.parseDecl(ast.PersistentDecl)
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *parser) simpleKeyword(kind ast.Kind) *ast.Node {
	t := p.advance()
	n := &ast.Node{Kind: kind, Ranging: rangeOf(t, t)}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) parseDecl(kind ast.Kind) *ast.Node {
	start := p.advance() // Global or Persistent
	var names []string
	for {
		id, err := p.expect(token.Ident)
		if err != nil {
			break
		}
		names = append(names, id.Lit)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	n := &ast.Node{Kind: kind, Params: names, Ranging: rangeOf(start, p.prevEnd(start))}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) prevEnd(fallback token.Token) token.Token {
	if p.pos == 0 {
		return fallback
	}
	return p.toks[p.pos-1]
}

// consumeTrailingSeparator reads the statement's separator and sets
// Suppress per spec §4.2 ("any statement whose separator is ';' has
// its suppress-output flag set").
func (p *parser) consumeTrailingSeparator(n *ast.Node) {
	switch p.cur().Kind {
	case token.Semicolon:
		n.Suppress = true
		p.advance()
	case token.Comma, token.Newline:
		p.advance()
	}
}

// parseAssignOrExprStmt implements spec §4.2's multi-assignment
// lookahead: a leading '[' is speculatively parsed as a target list,
// and only committed once ']=' is confirmed.
func (p *parser) parseAssignOrExprStmt() *ast.Node {
	if p.at(token.LBracket) {
		if n := p.tryParseMultiAssign(); n != nil {
			return n
		}
	}

	start := p.cur()
	expr := p.parseExpr()

	if p.at(token.Assign) {
		p.advance()
		rhs := p.parseExpr()
		var n *ast.Node
		if isAssignable(expr) && isEmptyMatrix(rhs) && isIndexTarget(expr) {
			n = &ast.Node{Kind: ast.DeleteAssign, Children: []*ast.Node{expr}, Ranging: rangeOf(start, p.prevEnd(start))}
		} else {
			n = &ast.Node{Kind: ast.Assign, Children: []*ast.Node{expr, rhs}, Ranging: rangeOf(start, p.prevEnd(start))}
		}
		p.consumeTrailingSeparator(n)
		return n
	}

	n := &ast.Node{Kind: ast.ExprStmt, Children: []*ast.Node{expr}, Ranging: rangeOf(start, p.prevEnd(start))}
	p.consumeTrailingSeparator(n)
	return n
}

func isAssignable(n *ast.Node) bool {
	switch n.Kind {
	case ast.Ident, ast.Call, ast.CellIndex, ast.FieldAccess:
		return true
	}
	return false
}

// isIndexTarget reports whether n is an index expression, the class
// of left-hand side spec §4.2 requires for a delete-assignment
// ("lhs = []" with an index expression lhs).
func isIndexTarget(n *ast.Node) bool {
	switch n.Kind {
	case ast.Call, ast.CellIndex:
		return true
	}
	return false
}

func isEmptyMatrix(n *ast.Node) bool {
	return n.Kind == ast.MatrixLit && len(n.Rows) == 0
}

// tryParseMultiAssign speculatively parses "[a, b, ~] = expr" and
// returns nil (after rewinding) if the bracketed list does not turn
// out to be followed by '='.
func (p *parser) tryParseMultiAssign() *ast.Node {
	mark := p.save()
	start := p.advance() // '['

	var names []string
	ok := true
	for !p.at(token.RBracket) {
		switch p.cur().Kind {
		case token.Ident:
			names = append(names, p.advance().Lit)
		case token.Not: // '~' lexes as Not; used here as the discard placeholder
			p.advance()
			names = append(names, "~")
		default:
			ok = false
		}
		if !ok {
			break
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !ok || !p.at(token.RBracket) {
		p.restore(mark)
		return nil
	}
	p.advance() // ']'
	if !p.at(token.Assign) {
		p.restore(mark)
		return nil
	}
	p.advance() // '=' -- committed past this point, per spec §4.2

	rhs := p.parseExpr()
	if rhs.Kind != ast.Call {
		panic(p.errf(start, "right-hand side of multi-assignment must be a call expression"))
	}
	n := &ast.Node{Kind: ast.MultiAssign, Returns: names, Children: []*ast.Node{rhs}, Ranging: rangeOf(start, p.prevEnd(start))}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) parseIf() *ast.Node {
	start := p.advance() // if
	cond := p.parseExpr()
	p.skipSeparators()
	body := p.parseBlock(token.Elseif, token.Else, token.End)
	branches := []ast.Branch{{Cond: cond, Body: body}}
	for p.at(token.Elseif) {
		p.advance()
		c := p.parseExpr()
		p.skipSeparators()
		b := p.parseBlock(token.Elseif, token.Else, token.End)
		branches = append(branches, ast.Branch{Cond: c, Body: b})
	}
	var elseBody *ast.Node
	if p.at(token.Else) {
		p.advance()
		p.skipSeparators()
		elseBody = p.parseBlock(token.End)
	}
	end := p.cur()
	if p.at(token.End) {
		p.advance()
	}
	n := &ast.Node{Kind: ast.If, Branches: branches, Else: elseBody, Ranging: rangeOf(start, end)}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) parseFor() *ast.Node {
	start := p.advance() // for
	hasParen := p.at(token.LParen)
	if hasParen {
		p.advance()
	}
	varName, err := p.expect(token.Ident)
	if err != nil {
		panic(err)
	}
	if _, err := p.expect(token.Assign); err != nil {
		panic(err)
	}
	target := p.parseExpr()
	if hasParen {
		if _, err := p.expect(token.RParen); err != nil {
			panic(err)
		}
	}
	p.skipSeparators()
	body := p.parseBlock(token.End)
	end := p.cur()
	if p.at(token.End) {
		p.advance()
	}
	n := &ast.Node{
		Kind:     ast.For,
		Str:      varName.Lit,
		Branches: []ast.Branch{{Cond: target, Body: body}},
		Ranging:  rangeOf(start, end),
	}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) parseWhile() *ast.Node {
	start := p.advance() // while
	cond := p.parseExpr()
	p.skipSeparators()
	body := p.parseBlock(token.End)
	end := p.cur()
	if p.at(token.End) {
		p.advance()
	}
	n := &ast.Node{Kind: ast.While, Branches: []ast.Branch{{Cond: cond, Body: body}}, Ranging: rangeOf(start, end)}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) parseSwitch() *ast.Node {
	start := p.advance() // switch
	selector := p.parseExpr()
	p.skipSeparators()
	var branches []ast.Branch
	for p.at(token.Case) {
		p.advance()
		c := p.parseExpr()
		p.skipSeparators()
		b := p.parseBlock(token.Case, token.Otherwise, token.End)
		branches = append(branches, ast.Branch{Cond: c, Body: b})
	}
	var elseBody *ast.Node
	if p.at(token.Otherwise) {
		p.advance()
		p.skipSeparators()
		elseBody = p.parseBlock(token.End)
	}
	end := p.cur()
	if p.at(token.End) {
		p.advance()
	}
	n := &ast.Node{Kind: ast.Switch, Children: []*ast.Node{selector}, Branches: branches, Else: elseBody, Ranging: rangeOf(start, end)}
	p.consumeTrailingSeparator(n)
	return n
}

func (p *parser) parseTry() *ast.Node {
	start := p.advance() // try
	p.skipSeparators()
	body := p.parseBlock(token.Catch, token.End)
	var catchVar string
	var catchBody *ast.Node
	if p.at(token.Catch) {
		p.advance()
		if p.at(token.Ident) {
			next := p.toks[min(p.pos+1, len(p.toks)-1)]
			if next.Kind == token.Newline || next.Kind == token.Semicolon || next.Kind == token.Comma {
				catchVar = p.advance().Lit
			}
		}
		p.skipSeparators()
		catchBody = p.parseBlock(token.End)
	}
	end := p.cur()
	if p.at(token.End) {
		p.advance()
	}
	n := &ast.Node{Kind: ast.TryCatch, Children: []*ast.Node{body}, Catch: catchBody, CatchVar: catchVar, Ranging: rangeOf(start, end)}
	p.consumeTrailingSeparator(n)
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseFuncDef implements spec §4.2's function-definition grammar,
// including the implicit end-of-input terminator for single-function
// files (spec §4.2/§9).
func (p *parser) parseFuncDef() *ast.Node {
	start := p.advance() // function
	var returns []string
	var nameTok token.Token
	var err error

	if p.at(token.LBracket) {
		p.advance()
		for !p.at(token.RBracket) {
			id, e := p.expect(token.Ident)
			if e != nil {
				panic(e)
			}
			returns = append(returns, id.Lit)
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.advance() // ']'
		if _, err = p.expect(token.Assign); err != nil {
			panic(err)
		}
		nameTok, err = p.expect(token.Ident)
		if err != nil {
			panic(err)
		}
	} else {
		id, e := p.expect(token.Ident)
		if e != nil {
			panic(e)
		}
		if p.at(token.Assign) {
			p.advance()
			returns = []string{id.Lit}
			nameTok, err = p.expect(token.Ident)
			if err != nil {
				panic(err)
			}
		} else {
			nameTok = id
		}
	}

	var params []string
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			id, e := p.expect(token.Ident)
			if e != nil {
				panic(e)
			}
			params = append(params, id.Lit)
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.advance() // ')'
	}

	p.skipSeparators()
	body := p.parseBlock(token.End)
	end := p.cur()
	if p.at(token.End) {
		p.advance()
	}
	n := &ast.Node{
		Kind:     ast.FuncDef,
		Str:      nameTok.Lit,
		Params:   params,
		Returns:  returns,
		Children: []*ast.Node{body},
		Ranging:  rangeOf(start, end),
	}
	p.consumeTrailingSeparator(n)
	return n
}

// --- expressions, precedence low -> high ---

func (p *parser) parseExpr() *ast.Node { return p.parseOrOr() }

func (p *parser) binaryLevel(next func() *ast.Node, kinds ...token.Kind) *ast.Node {
	left := next()
	for {
		match := false
		for _, k := range kinds {
			if p.at(k) {
				match = true
				break
			}
		}
		if !match {
			return left
		}
		opTok := p.advance()
		right := next()
		left = &ast.Node{Kind: ast.BinaryOp, Str: opTok.Lit, Children: []*ast.Node{left, right}, Ranging: rangeOf(tokenAt(left), tokenAt(right))}
	}
}

// tokenAt synthesises a token carrying n's byte range, for Ranging
// bookkeeping when combining already-built subtrees.
func tokenAt(n *ast.Node) token.Token { return token.Token{Pos: n.From, End: n.To} }

func (p *parser) parseOrOr() *ast.Node  { return p.binaryLevel(p.parseAndAnd, token.OrOr) }
func (p *parser) parseAndAnd() *ast.Node { return p.binaryLevel(p.parseOr, token.AndAnd) }
func (p *parser) parseOr() *ast.Node    { return p.binaryLevel(p.parseAnd, token.Or) }
func (p *parser) parseAnd() *ast.Node   { return p.binaryLevel(p.parseComparison, token.And) }
func (p *parser) parseComparison() *ast.Node {
	return p.binaryLevel(p.parseColon, token.Eq, token.Ne, token.Lt, token.Gt, token.Le, token.Ge)
}

func (p *parser) parseColon() *ast.Node {
	first := p.parseAdditive()
	if !p.at(token.Colon) {
		return first
	}
	start := tokenAt(first)
	p.advance()
	second := p.parseAdditive()
	if !p.at(token.Colon) {
		return &ast.Node{Kind: ast.Colon, Children: []*ast.Node{first, second}, Ranging: rangeOf(start, tokenAt(second))}
	}
	p.advance()
	third := p.parseAdditive()
	return &ast.Node{Kind: ast.Colon, Children: []*ast.Node{first, second, third}, Ranging: rangeOf(start, tokenAt(third))}
}

func (p *parser) parseAdditive() *ast.Node {
	return p.binaryLevel(p.parseMultiplicative, token.Plus, token.Minus)
}

func (p *parser) parseMultiplicative() *ast.Node {
	return p.binaryLevel(p.parseUnary, token.Star, token.Slash, token.Backslash,
		token.DotStar, token.DotSlash, token.DotBackslash)
}

// parseUnary and parsePower together implement spec §4.2's rule that
// unary minus binds tighter than power to its right operand but not
// to its left ("-2^2" parses as "-(2^2)"): parseUnary wraps a whole
// parsePower result, while parsePower's right operand recurses back
// into parseUnary to stay right-associative and admit "2^-2".
func (p *parser) parseUnary() *ast.Node {
	if p.at(token.Plus) || p.at(token.Minus) || p.at(token.Not) {
		opTok := p.advance()
		operand := p.parsePower()
		return &ast.Node{Kind: ast.UnaryOp, Str: opTok.Lit, Children: []*ast.Node{operand}, Ranging: rangeOf(opTok, tokenAt(operand))}
	}
	return p.parsePower()
}

func (p *parser) parsePower() *ast.Node {
	left := p.parsePostfix()
	if p.at(token.Caret) || p.at(token.DotCaret) {
		opTok := p.advance()
		right := p.parseUnary()
		return &ast.Node{Kind: ast.BinaryOp, Str: opTok.Lit, Children: []*ast.Node{left, right}, Ranging: rangeOf(tokenAt(left), tokenAt(right))}
	}
	return left
}

func (p *parser) parsePostfix() *ast.Node {
	n := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			args := p.parseArgList(token.RParen)
			endTok := p.prevEnd(p.cur())
			n = &ast.Node{Kind: ast.Call, Children: append([]*ast.Node{n}, args...), Ranging: rangeOf(tokenAt(n), endTok)}
		case token.LBrace:
			args := p.parseArgList(token.RBrace)
			endTok := p.prevEnd(p.cur())
			n = &ast.Node{Kind: ast.CellIndex, Children: append([]*ast.Node{n}, args...), Ranging: rangeOf(tokenAt(n), endTok)}
		case token.Dot:
			p.advance()
			id, err := p.expect(token.Ident)
			if err != nil {
				panic(err)
			}
			n = &ast.Node{Kind: ast.FieldAccess, Str: id.Lit, Children: []*ast.Node{n}, Ranging: rangeOf(tokenAt(n), id)}
		case token.Quote:
			t := p.advance()
			n = &ast.Node{Kind: ast.PostfixOp, Str: "'", Children: []*ast.Node{n}, Ranging: rangeOf(tokenAt(n), t)}
		case token.DotQuote:
			t := p.advance()
			n = &ast.Node{Kind: ast.PostfixOp, Str: ".'", Children: []*ast.Node{n}, Ranging: rangeOf(tokenAt(n), t)}
		default:
			return n
		}
	}
}

// parseArgList parses a parenthesised/braced argument list, admitting
// a bare ':' argument (spec §4.2's zero-child colon node).
func (p *parser) parseArgList(close token.Kind) []*ast.Node {
	p.advance() // opening bracket
	var args []*ast.Node
	for !p.at(close) {
		if p.at(token.Colon) {
			next := p.toks[min(p.pos+1, len(p.toks)-1)]
			if next.Kind == token.Comma || next.Kind == close {
				t := p.advance()
				args = append(args, &ast.Node{Kind: ast.Colon, Ranging: rangeOf(t, t)})
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
		}
		args = append(args, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(close); err != nil {
		panic(err)
	}
	return args
}

func (p *parser) parsePrimary() *ast.Node {
	t := p.cur()
	switch t.Kind {
	case token.Number:
		p.advance()
		v, _ := strconv.ParseFloat(normalizeNumLit(t.Lit), 64)
		return &ast.Node{Kind: ast.NumberLit, Num: v, Ranging: rangeOf(t, t)}
	case token.Imaginary:
		p.advance()
		lit := strings.TrimSuffix(strings.TrimSuffix(t.Lit, "i"), "j")
		v, _ := strconv.ParseFloat(normalizeNumLit(lit), 64)
		return &ast.Node{Kind: ast.ImaginaryLit, Num: v, Ranging: rangeOf(t, t)}
	case token.String:
		p.advance()
		return &ast.Node{Kind: ast.StringLit, Str: t.Lit, Ranging: rangeOf(t, t)}
	case token.True:
		p.advance()
		return &ast.Node{Kind: ast.BoolLit, Bool: true, Ranging: rangeOf(t, t)}
	case token.False:
		p.advance()
		return &ast.Node{Kind: ast.BoolLit, Bool: false, Ranging: rangeOf(t, t)}
	case token.End:
		p.advance()
		return &ast.Node{Kind: ast.EndValue, Ranging: rangeOf(t, t)}
	case token.Ident:
		p.advance()
		return &ast.Node{Kind: ast.Ident, Str: t.Lit, Ranging: rangeOf(t, t)}
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		end, err := p.expect(token.RParen)
		if err != nil {
			panic(err)
		}
		inner.Ranging = rangeOf(t, end)
		return inner
	case token.LBracket:
		return p.parseMatrixLit()
	case token.LBrace:
		return p.parseCellLit()
	case token.At:
		return p.parseAnonFunc()
	case token.Colon:
		p.advance()
		return &ast.Node{Kind: ast.Colon, Ranging: rangeOf(t, t)}
	default:
		panic(p.errf(t, "unexpected token %v in expression", t.Kind))
	}
}

func normalizeNumLit(lit string) string {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		n, _ := strconv.ParseUint(lit[2:], 16, 64)
		return strconv.FormatUint(n, 10)
	}
	if strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B") {
		n, _ := strconv.ParseUint(lit[2:], 2, 64)
		return strconv.FormatUint(n, 10)
	}
	return lit
}

// parseMatrixLit/parseCellLit implement spec §4.2's row structure:
// ';' or a context-induced newline (already folded to Semicolon by
// the lexer) terminates a row, ',' separates elements, empty rows are
// dropped.
func (p *parser) parseMatrixLit() *ast.Node { return p.parseBracketLit(ast.MatrixLit, token.RBracket) }
func (p *parser) parseCellLit() *ast.Node   { return p.parseBracketLit(ast.CellLit, token.RBrace) }

func (p *parser) parseBracketLit(kind ast.Kind, close token.Kind) *ast.Node {
	start := p.advance() // opening bracket
	var rows [][]*ast.Node
	var row []*ast.Node
	for !p.at(close) {
		switch p.cur().Kind {
		case token.Comma:
			p.advance()
		case token.Semicolon:
			if len(row) > 0 {
				rows = append(rows, row)
				row = nil
			}
			p.advance()
		default:
			row = append(row, p.parseExpr())
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	end, err := p.expect(close)
	if err != nil {
		panic(err)
	}
	return &ast.Node{Kind: kind, Rows: rows, Ranging: rangeOf(start, end)}
}

func (p *parser) parseAnonFunc() *ast.Node {
	start := p.advance() // '@'
	if _, err := p.expect(token.LParen); err != nil {
		panic(err)
	}
	var params []string
	for !p.at(token.RParen) {
		id, err := p.expect(token.Ident)
		if err != nil {
			panic(err)
		}
		params = append(params, id.Lit)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.advance() // ')'
	body := p.parseExpr()
	return &ast.Node{Kind: ast.AnonFunc, Params: params, Children: []*ast.Node{body}, Ranging: rangeOf(start, tokenAt(body))}
}
