package costsheet

import (
	"fmt"
	"strings"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokCell
	tokRange
	tokFunc // function name, its "(" is part of the token
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer splits a formula body (without its leading "=") into tokens.
//
// Characters that belong to no token are dropped. Inside the argument list of
// a function call a comma separates arguments; everywhere else a comma
// followed by three digits is a thousands separator and any other comma is
// dropped.
type lexer struct {
	src    string
	pos    int
	parens []bool // open parentheses, true for function calls
	tokens []token
}

func tokenize(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.kind == tokEOF {
			break
		}
	}
	if len(l.parens) > 0 {
		return nil, fmt.Errorf("%w: missing closing parenthesis", ErrUnparseable)
	}
	return l.tokens, nil
}

func (l *lexer) peek() byte {
	if l.pos < len(l.src) {
		return l.src[l.pos]
	}
	return 0
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

func (l *lexer) inCall() bool {
	for _, call := range l.parens {
		if call {
			return true
		}
	}
	return false
}

func (l *lexer) next() (token, error) {
	for {
		l.skipSpaces()
		start := l.pos
		ch := l.peek()
		switch {
		case ch == 0:
			return token{kind: tokEOF, pos: start}, nil
		case isDigit(ch) || ch == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
			return l.number(), nil
		case isLetter(ch):
			tok, ok, err := l.word()
			if err != nil || ok {
				return tok, err
			}
			continue // stray identifier, dropped
		case ch == '(':
			l.pos++
			l.parens = append(l.parens, false)
			return token{kind: tokLParen, text: "(", pos: start}, nil
		case ch == ')':
			l.pos++
			if len(l.parens) == 0 {
				return token{}, fmt.Errorf("%w: unexpected ')' at %d", ErrUnparseable, start)
			}
			l.parens = l.parens[:len(l.parens)-1]
			return token{kind: tokRParen, text: ")", pos: start}, nil
		case ch == ',':
			l.pos++
			if len(l.parens) > 0 && l.parens[len(l.parens)-1] {
				return token{kind: tokComma, text: ",", pos: start}, nil
			}
			continue
		case ch == '+' || ch == '-' || ch == '*' || ch == '/':
			l.pos++
			return token{kind: tokOp, text: string(ch), pos: start}, nil
		default:
			l.pos++
		}
	}
}

// number scans digits, an optional fraction and, outside function calls,
// thousands separators.
func (l *lexer) number() token {
	start := l.pos
	grouping := !l.inCall()
	var b strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if isDigit(ch) {
			b.WriteByte(ch)
			l.pos++
			continue
		}
		if ch == ',' && grouping && b.Len() > 0 && l.group() {
			l.pos++
			continue
		}
		break
	}
	if l.peek() == '.' {
		b.WriteByte('.')
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			b.WriteByte(l.src[l.pos])
			l.pos++
		}
	}
	return token{kind: tokNumber, text: b.String(), pos: start}
}

// group reports whether the comma at the current position is followed by
// exactly three digits.
func (l *lexer) group() bool {
	rest := l.src[l.pos+1:]
	if len(rest) < 3 || !isDigit(rest[0]) || !isDigit(rest[1]) || !isDigit(rest[2]) {
		return false
	}
	return len(rest) == 3 || !isDigit(rest[3])
}

// word scans a letter run followed by a digit run: a function name when a
// "(" follows, else a cell reference or a range. A bare letter run is reported
// as not ok and dropped by the caller.
func (l *lexer) word() (token, bool, error) {
	start := l.pos
	name := l.alnum()
	l.skipSpaces()
	if l.peek() == '(' {
		l.pos++
		l.parens = append(l.parens, true)
		return token{kind: tokFunc, text: strings.ToUpper(name), pos: start}, true, nil
	}
	hasDigits := isDigit(name[len(name)-1])
	if l.peek() == ':' {
		l.pos++
		l.skipSpaces()
		end := l.alnum()
		rng := name + ":" + end
		if _, _, err := parseCorners(rng); err != nil {
			return token{}, false, err
		}
		return token{kind: tokRange, text: strings.ToUpper(rng), pos: start}, true, nil
	}
	if !hasDigits {
		return token{}, false, nil
	}
	if _, _, err := ParseCellReference(name); err != nil {
		return token{}, false, err
	}
	return token{kind: tokCell, text: strings.ToUpper(name), pos: start}, true, nil
}

// alnum scans letters then digits.
func (l *lexer) alnum() string {
	start := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return l.src[start:l.pos]
}
