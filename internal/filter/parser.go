package filter

// Parser builds a Pattern AST from a token stream.
type Parser struct {
	tokens []Token
	pos    int
	source string
}

// ParsePattern lexes and parses src into a Pattern AST using the given
// metacharacter set.
func ParsePattern(src string, meta Metachars) (*Pattern, error) {
	tokens, err := NewLexer(src, meta).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, source: src}
	pat, tail, perr := p.parsePattern()
	if perr != nil {
		return nil, perr
	}
	if tail.Kind != TokEOF {
		return nil, newError(ParseError, tail.Span, "unexpected %q", tail.Text)
	}
	pat.Source = src
	return pat, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

// parsePattern consumes top-level segments until it reaches a token that is
// not part of the pattern: EOF, or a stray EXPR_CLOSE (PIPE and COLON are
// only lexed inside an expression), which ParsePattern then reports. It
// returns the terminator token without consuming it, except EOF which
// self-terminates. Nested argument expressions go through parseExpression.
func (p *Parser) parsePattern() (*Pattern, Token, error) {
	pat := &Pattern{}
	var lit []byte
	litStart := 0

	flushLiteral := func(end int) {
		if len(lit) > 0 {
			pat.Segments = append(pat.Segments, Segment{Literal: string(lit), SourceSpan: Range{litStart, end}})
			lit = nil
		}
	}

	for {
		t := p.peek()
		switch t.Kind {
		case TokEOF, TokPipe, TokColon, TokExprClose:
			flushLiteral(t.Span.Start)
			return pat, t, nil
		case TokExprOpen:
			flushLiteral(t.Span.Start)
			expr, err := p.parseExpression()
			if err != nil {
				return nil, Token{}, err
			}
			pat.Segments = append(pat.Segments, Segment{Expr: expr, SourceSpan: expr.SourceSpan})
		case TokLiteral:
			if len(lit) == 0 {
				litStart = t.Span.Start
			}
			lit = append(lit, t.Text...)
			p.next()
		}
	}
}

// parseExpression consumes "{" chain "}" and returns the resulting
// Expression. The opening "{" must be the current token.
func (p *Parser) parseExpression() (*Expression, error) {
	open := p.next() // TokExprOpen
	chain, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	closeTok := p.next()
	if closeTok.Kind != TokExprClose {
		return nil, newError(LexError, Range{open.Span.Start, open.Span.End}, "unterminated expression")
	}
	return &Expression{Chain: chain, SourceSpan: Range{open.Span.Start, closeTok.Span.End}}, nil
}

// parseChain consumes filter ("|" filter)* up to (but not including) the
// closing "}".
func (p *Parser) parseChain() ([]FilterInvocation, error) {
	var chain []FilterInvocation
	for {
		inv, err := p.parseFilter(len(chain) == 0)
		if err != nil {
			return nil, err
		}
		chain = append(chain, inv)

		t := p.peek()
		switch t.Kind {
		case TokPipe:
			p.next()
			if p.peek().Kind == TokExprClose {
				return nil, newError(ParseError, t.Span, "trailing '|' before '}'")
			}
			continue
		case TokExprClose:
			return chain, nil
		case TokEOF:
			return nil, newError(LexError, t.Span, "unterminated expression: missing '}'")
		default:
			return nil, newError(ParseError, t.Span, "unexpected %q in filter chain", t.Text)
		}
	}
}

// parseFilter consumes name (":" arg (":" arg)*)?. isFirst indicates
// whether this is the chain's only filter so far, needed to recognize the
// "{}" input-substitution shorthand.
func (p *Parser) parseFilter(isFirst bool) (FilterInvocation, error) {
	start := p.peek().Span.Start
	name, nameEnd := p.collectName()

	t := p.peek()
	if name == "" {
		switch {
		case t.Kind == TokExprClose && isFirst:
			// "{}" or "{|...}" with an empty leading filter before a
			// "}" is only the shorthand when it is the chain's sole
			// member; parseChain already enforces "sole" by having
			// returned before consuming further filters.
			return FilterInvocation{Name: "", SourceSpan: Range{start, nameEnd}}, nil
		case t.Kind == TokColon:
			return FilterInvocation{}, newError(ParseError, t.Span, "stray ':': no filter name precedes it")
		case t.Kind == TokPipe || t.Kind == TokExprClose:
			return FilterInvocation{}, newError(ParseError, t.Span, "empty chain: missing filter name")
		case t.Kind == TokEOF:
			return FilterInvocation{}, newError(LexError, t.Span, "unterminated expression: missing '}'")
		}
	}

	inv := FilterInvocation{Name: name, SourceSpan: Range{start, nameEnd}}
	for p.peek().Kind == TokColon {
		p.next()
		arg, err := p.parseArgument()
		if err != nil {
			return FilterInvocation{}, err
		}
		inv.Args = append(inv.Args, arg)
	}
	inv.SourceSpan.End = p.prevEnd()
	return inv, nil
}

// collectName accumulates consecutive TokLiteral tokens into a filter name.
func (p *Parser) collectName() (string, int) {
	var name []byte
	end := p.peek().Span.Start
	for p.peek().Kind == TokLiteral {
		t := p.next()
		name = append(name, t.Text...)
		end = t.Span.End
	}
	return string(name), end
}

// parseArgument consumes a single argument: either a text-run or, when the
// next token is "{", a single nested expression. An argument is never a mix
// of literal text and an expression.
func (p *Parser) parseArgument() (Argument, error) {
	if p.peek().Kind == TokExprOpen {
		expr, err := p.parseExpression()
		if err != nil {
			return Argument{}, err
		}
		sub := &Pattern{Segments: []Segment{{Expr: expr, SourceSpan: expr.SourceSpan}}}
		return Argument{SubPattern: sub, SourceSpan: expr.SourceSpan}, nil
	}

	start := p.peek().Span.Start
	end := start
	var text []byte
	for {
		t := p.peek()
		switch t.Kind {
		case TokLiteral:
			p.next()
			text = append(text, t.Text...)
			end = t.Span.End
		case TokColon, TokPipe, TokExprClose:
			return Argument{Text: string(text), SourceSpan: Range{start, end}}, nil
		case TokEOF:
			return Argument{}, newError(LexError, t.Span, "unterminated expression: missing '}'")
		default:
			return Argument{}, newError(ParseError, t.Span, "unexpected %q in argument", t.Text)
		}
	}
}

func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].Span.End
}
