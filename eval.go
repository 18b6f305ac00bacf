package costsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result is the outcome of evaluating a formula. On failure Value is
// ErrorSentinel and Err describes the failure.
type Result struct {
	Value Value
	Err   error
}

// Evaluator evaluates formulas with a given function registry.
type Evaluator struct {
	funcs Registry
}

// NewEvaluator returns an evaluator resolving function calls in funcs.
func NewEvaluator(funcs Registry) *Evaluator {
	return &Evaluator{funcs: funcs}
}

var defaultEvaluator = NewEvaluator(DefaultRegistry())

// Evaluate evaluates formula with the built-in functions. See Evaluator.Evaluate.
func Evaluate(formula string, g *Grid, current string) Result {
	return defaultEvaluator.Evaluate(formula, g, current)
}

// Evaluate computes formula against the values currently stored in g, on
// behalf of the cell keyed current.
//
// Text that does not start with "=" is returned unchanged. The numeric result
// is rounded to two decimals; a non-finite result evaluates to 0. A reference
// to current, directly or through a range, is a circular reference. A formula
// reading more than MaxCells cells through its ranges fails with
// ErrBadReference.
func (e *Evaluator) Evaluate(formula string, g *Grid, current string) Result {
	body, ok := strings.CutPrefix(formula, "=")
	if !ok {
		return Result{Value: formula}
	}
	v, err := e.eval(body, g, current)
	if err != nil {
		return Result{Value: ErrorSentinel, Err: err}
	}
	return Result{Value: v}
}

func (e *Evaluator) eval(body string, g *Grid, current string) (float64, error) {
	root, err := parse(body)
	if err != nil {
		return 0, err
	}
	ctx := &evalContext{grid: g, funcs: e.funcs, current: strings.ToUpper(current)}
	v, err := root.eval(ctx)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return round2(v), nil
}

// References returns every cell a formula reads, ranges expanded, in order of
// appearance. Duplicates are kept. Like Evaluate, it rejects a formula whose
// ranges cover more than MaxCells cells.
func References(formula string) ([]Address, error) {
	body, ok := strings.CutPrefix(formula, "=")
	if !ok {
		return nil, nil
	}
	tokens, err := tokenize(body)
	if err != nil {
		return nil, err
	}
	var (
		refs []Address
		read int64
	)
	for _, tok := range tokens {
		switch tok.kind {
		case tokCell:
			r, c, _ := ParseCellReference(tok.text)
			refs = append(refs, Address{Row: r, Col: c})
		case tokRange:
			start, end, _ := parseCorners(tok.text)
			read += area(start, end)
			if read > MaxCells {
				return nil, errTooManyCells
			}
			refs = append(refs, expand(start, end)...)
		}
	}
	return refs, nil
}

var errTooManyCells = fmt.Errorf("%w: ranges cover more than %d cells", ErrBadReference, MaxCells)

type evalContext struct {
	grid    *Grid
	funcs   Registry
	current string
	read    int64 // cells read through ranges so far
}

func (ctx *evalContext) lookup(a Address) (float64, error) {
	key := a.Key()
	if key == ctx.current {
		return 0, fmt.Errorf("%w: %s refers to itself", ErrCircularReference, key)
	}
	if ctx.grid == nil {
		return 0, nil
	}
	return ctx.grid.numberAt(key), nil
}

// node is an expression tree node.
type node interface {
	eval(ctx *evalContext) (float64, error)
}

type numberNode struct{ value float64 }

func (n numberNode) eval(*evalContext) (float64, error) { return n.value, nil }

type refNode struct{ addr Address }

func (n refNode) eval(ctx *evalContext) (float64, error) { return ctx.lookup(n.addr) }

type rangeNode struct{ start, end Address }

func (n rangeNode) values(ctx *evalContext) ([]float64, error) {
	ctx.read += area(n.start, n.end)
	if ctx.read > MaxCells {
		return nil, errTooManyCells
	}
	cells := expand(n.start, n.end)
	values := make([]float64, 0, len(cells))
	for _, a := range cells {
		v, err := ctx.lookup(a)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// eval sums the range, as a bare range outside a function call means SUM.
func (n rangeNode) eval(ctx *evalContext) (float64, error) {
	values, err := n.values(ctx)
	if err != nil {
		return 0, err
	}
	return sum(values), nil
}

type callNode struct {
	name string
	args []node
}

func (n callNode) eval(ctx *evalContext) (float64, error) {
	fn, ok := ctx.funcs.Lookup(n.name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, n.name)
	}
	var args []float64
	for _, arg := range n.args {
		if rng, ok := arg.(rangeNode); ok {
			values, err := rng.values(ctx)
			if err != nil {
				return 0, err
			}
			args = append(args, values...)
			continue
		}
		v, err := arg.eval(ctx)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	return fn(args), nil
}

type unaryNode struct {
	op byte
	x  node
}

func (n unaryNode) eval(ctx *evalContext) (float64, error) {
	v, err := n.x.eval(ctx)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(ctx *evalContext) (float64, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	default:
		return l / r, nil
	}
}

// parser is a recursive-descent parser over the restricted grammar:
//
//	expr    := term (("+" | "-") term)*
//	term    := unary (("*" | "/") unary)*
//	unary   := ("+" | "-") unary | primary
//	primary := number | cell | range | NAME "(" [expr ("," expr)*] ")" | "(" expr ")"
type parser struct {
	tokens []token
	pos    int
}

func parse(body string) (node, error) {
	tokens, err := tokenize(body)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEOF {
		return numberNode{}, nil
	}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrUnparseable, tok.text, tok.pos)
	}
	return root, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(ops string) bool {
	tok := p.peek()
	return tok.kind == tokOp && strings.Contains(ops, tok.text)
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+-") {
		op := p.advance().text[0]
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*/") {
		op := p.advance().text[0]
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.isOp("+-") {
		op := p.advance().text[0]
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	tok := p.advance()
	switch tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrUnparseable, tok.text)
		}
		return numberNode{value: v}, nil
	case tokCell:
		r, c, err := ParseCellReference(tok.text)
		if err != nil {
			return nil, err
		}
		return refNode{addr: Address{Row: r, Col: c}}, nil
	case tokRange:
		start, end, err := parseCorners(tok.text)
		if err != nil {
			return nil, err
		}
		return rangeNode{start: start, end: end}, nil
	case tokFunc:
		return p.call(tok.text)
	case tokLParen:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.advance().kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrUnparseable)
		}
		return x, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrUnparseable)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrUnparseable, tok.text, tok.pos)
	}
}

func (p *parser) call(name string) (node, error) {
	n := callNode{name: name}
	if p.peek().kind == tokRParen {
		p.advance()
		return n, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		switch p.advance().kind {
		case tokComma:
			continue
		case tokRParen:
			return n, nil
		default:
			return nil, fmt.Errorf("%w: malformed arguments to %s", ErrUnparseable, name)
		}
	}
}
