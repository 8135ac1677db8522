package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/arith/log"
)

// Parse parses src into an expression tree using default options.
func Parse(src string) (Node, error) {
	return ParseString(context.Background(), src)
}

// ParseString parses src into an expression tree.
//
// Successful parses are memoized unless disabled with [WithCache]; every
// call returns a tree that shares no nodes with the tree returned by any
// other call.
func ParseString(ctx context.Context, src string, opts ...Option) (Node, error) {
	o := makeOptions(opts...)

	var (
		n   Node
		err error
	)

	if o.cache {
		n, err = parseCached(ctx, src, o)
	} else {
		n, err = parse(ctx, src, o)
	}

	if err != nil {
		o.logger.TraceContext(ctx, "parse failed",
			slog.String("source", src),
			slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("source", src),
		slog.String("tree", String(n)))

	return n, nil
}

// ParseReader reads all of r and parses it as a single expression.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (Node, error) {
	src, err := ReadSource(r)
	if err != nil {
		return nil, err
	}

	return ParseString(ctx, src, opts...)
}

// ReadSource reads all of r through a read-ahead buffer.
func ReadSource(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	src, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return string(src), nil
}

// parser is a recursive-descent parser holding one token of lookahead.
type parser struct {
	ctx      context.Context
	scan     *Scanner
	logger   log.Logger
	tok      Token
	depth    int
	maxDepth int
}

func parse(ctx context.Context, src string, o options) (Node, error) {
	p := &parser{
		ctx:      ctx,
		scan:     NewScanner(src),
		logger:   o.logger,
		maxDepth: o.maxDepth,
	}
	p.advance()

	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != KindEnd {
		return nil, p.unexpected("end of input")
	}

	return n, nil
}

// advance moves the lookahead to the next token.
func (p *parser) advance() {
	p.tok = p.scan.Next()
	p.logger.TraceContext(p.ctx, "scan",
		slog.String("token", p.tok.String()),
		slog.Int("offset", p.tok.Pos.Offset))
}

// parseExpr parses Expr → Term { ('+' | '-') Term }.
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryKind

		switch p.tok.Kind {
		case KindPlus:
			op = Add

		case KindMinus:
			op = Subtract

		default:
			return left, nil
		}

		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = NewBinary(op, left, right)
	}
}

// parseTerm parses Term → Factor { ('*' | '/') Factor }.
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryKind

		switch p.tok.Kind {
		case KindAsterisk:
			op = Multiply

		case KindSlash:
			op = Divide

		default:
			return left, nil
		}

		p.advance()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		left = NewBinary(op, left, right)
	}
}

// parseFactor parses
//
//	Factor → IDENTIFIER | NUMBER [ '.' NUMBER ] | '(' Expr ')' | '-' Factor
func (p *parser) parseFactor() (Node, error) {
	tok := p.tok

	switch tok.Kind {
	case KindIdentifier:
		p.advance()

		return NewIdentifier(tok.Lexeme), nil

	case KindNumber:
		return p.parseNumber()

	case KindLParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		p.advance()

		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.tok.Kind != KindRParen {
			return nil, p.unexpected(`")" to close "(" at ` + tok.Pos.String())
		}

		p.advance()

		return n, nil

	case KindMinus:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		p.advance()

		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		return NewUnary(Negate, operand), nil

	default:
		return nil, p.unexpected("identifier, number, \"(\", or \"-\"")
	}
}

// parseNumber parses NUMBER [ '.' NUMBER ] with the lookahead on NUMBER.
func (p *parser) parseNumber() (Node, error) {
	whole := p.tok
	p.advance()

	if p.tok.Kind != KindDot {
		n, err := ParseInteger(whole.Lexeme)
		if err != nil {
			return nil, ErrParse.Wrap(err).WithPosition(whole.Pos)
		}

		return n, nil
	}

	dot := p.tok
	p.advance()

	if p.tok.Kind != KindNumber {
		return nil, p.unexpected("digits after \".\"")
	}

	frac := p.tok
	p.advance()

	if p.tok.Kind == KindDot {
		return nil, p.unexpected("at most one \".\" in a number")
	}

	n, err := ParseFloat(whole.Lexeme + dot.Lexeme + frac.Lexeme)
	if err != nil {
		return nil, ErrParse.Wrap(err).WithPosition(whole.Pos)
	}

	return n, nil
}

// enter records one more level of nesting, failing past the limit.
func (p *parser) enter() error {
	p.depth++

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return ErrParse.
			Wrap(ErrMaxDepthExceeded.With(slog.Int("max", p.maxDepth))).
			WithPosition(p.tok.Pos)
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

// unexpected returns a parse error at the lookahead token.
func (p *parser) unexpected(expected string) error {
	found := p.tok.describe()

	return ErrParse.
		Wrap(errors.New("expected " + expected + ", found " + found)).
		WithPosition(p.tok.Pos).
		With(
			slog.String("expected", expected),
			slog.String("found", found),
		)
}
