package script

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType identifies the lexical class of a token.
type tokenType int

const (
	tokEOF tokenType = iota

	// Punctuation
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokSemi
	tokQuestion
	tokColon
	tokArrow // "=>"

	// Operators
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokAssign    // "="
	tokEq        // "=="
	tokStrictEq  // "==="
	tokNeq       // "!="
	tokStrictNeq // "!=="
	tokLess
	tokLessEq
	tokGreater
	tokGreaterEq
	tokAnd // "&&"
	tokOr  // "||"
	tokBang

	// Literals and identifiers
	tokIdent
	tokNumber
	tokString

	// Keywords
	tokFunction
	tokReturn
	tokIf
	tokElse
	tokWhile
	tokVar
	tokLet
	tokConst
	tokTrue
	tokFalse
	tokNull
)

// token is one lexical token with its source position.
type token struct {
	typ  tokenType
	text string // raw text for identifiers and numbers, decoded value for strings
	line int
	col  int
}

var keywords = map[string]tokenType{
	"function": tokFunction,
	"return":   tokReturn,
	"if":       tokIf,
	"else":     tokElse,
	"while":    tokWhile,
	"var":      tokVar,
	"let":      tokLet,
	"const":    tokConst,
	"true":     tokTrue,
	"false":    tokFalse,
	"null":     tokNull,
}

// lexer converts source text into a token stream.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// lex tokenizes the entire source, returning the token list or the first
// lexical error encountered.
func lex(src string) ([]token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.typ == tokEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) errf(line, col int, format string, args ...any) error {
	return &Error{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) peekByte() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return c
}

// skipSpace consumes whitespace and comments (line and block forms).
func (lx *lexer) skipSpace() error {
	for lx.pos < len(lx.src) {
		switch c := lx.src[lx.pos]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.advance()
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.advance()
			}
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '*':
			line, col := lx.line, lx.col
			lx.advance()
			lx.advance()
			closed := false
			for lx.pos < len(lx.src) {
				if lx.src[lx.pos] == '*' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/' {
					lx.advance()
					lx.advance()
					closed = true
					break
				}
				lx.advance()
			}
			if !closed {
				return lx.errf(line, col, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() (token, error) {
	if err := lx.skipSpace(); err != nil {
		return token{}, err
	}
	line, col := lx.line, lx.col
	if lx.pos >= len(lx.src) {
		return token{typ: tokEOF, line: line, col: col}, nil
	}

	c := lx.peekByte()
	switch {
	case c == '(':
		lx.advance()
		return token{typ: tokLParen, line: line, col: col}, nil
	case c == ')':
		lx.advance()
		return token{typ: tokRParen, line: line, col: col}, nil
	case c == '{':
		lx.advance()
		return token{typ: tokLBrace, line: line, col: col}, nil
	case c == '}':
		lx.advance()
		return token{typ: tokRBrace, line: line, col: col}, nil
	case c == ',':
		lx.advance()
		return token{typ: tokComma, line: line, col: col}, nil
	case c == ';':
		lx.advance()
		return token{typ: tokSemi, line: line, col: col}, nil
	case c == '?':
		lx.advance()
		return token{typ: tokQuestion, line: line, col: col}, nil
	case c == ':':
		lx.advance()
		return token{typ: tokColon, line: line, col: col}, nil
	case c == '+':
		lx.advance()
		return token{typ: tokPlus, line: line, col: col}, nil
	case c == '-':
		lx.advance()
		return token{typ: tokMinus, line: line, col: col}, nil
	case c == '*':
		lx.advance()
		return token{typ: tokStar, line: line, col: col}, nil
	case c == '/':
		lx.advance()
		return token{typ: tokSlash, line: line, col: col}, nil
	case c == '%':
		lx.advance()
		return token{typ: tokPercent, line: line, col: col}, nil
	case c == '=':
		lx.advance()
		if lx.peekByte() == '>' {
			lx.advance()
			return token{typ: tokArrow, line: line, col: col}, nil
		}
		if lx.peekByte() == '=' {
			lx.advance()
			if lx.peekByte() == '=' {
				lx.advance()
				return token{typ: tokStrictEq, line: line, col: col}, nil
			}
			return token{typ: tokEq, line: line, col: col}, nil
		}
		return token{typ: tokAssign, line: line, col: col}, nil
	case c == '!':
		lx.advance()
		if lx.peekByte() == '=' {
			lx.advance()
			if lx.peekByte() == '=' {
				lx.advance()
				return token{typ: tokStrictNeq, line: line, col: col}, nil
			}
			return token{typ: tokNeq, line: line, col: col}, nil
		}
		return token{typ: tokBang, line: line, col: col}, nil
	case c == '<':
		lx.advance()
		if lx.peekByte() == '=' {
			lx.advance()
			return token{typ: tokLessEq, line: line, col: col}, nil
		}
		return token{typ: tokLess, line: line, col: col}, nil
	case c == '>':
		lx.advance()
		if lx.peekByte() == '=' {
			lx.advance()
			return token{typ: tokGreaterEq, line: line, col: col}, nil
		}
		return token{typ: tokGreater, line: line, col: col}, nil
	case c == '&':
		lx.advance()
		if lx.peekByte() != '&' {
			return token{}, lx.errf(line, col, "unexpected character %q", "&")
		}
		lx.advance()
		return token{typ: tokAnd, line: line, col: col}, nil
	case c == '|':
		lx.advance()
		if lx.peekByte() != '|' {
			return token{}, lx.errf(line, col, "unexpected character %q", "|")
		}
		lx.advance()
		return token{typ: tokOr, line: line, col: col}, nil
	case c == '"' || c == '\'':
		return lx.lexString(line, col)
	case c >= '0' && c <= '9':
		return lx.lexNumber(line, col)
	case isIdentStart(rune(c)):
		return lx.lexIdent(line, col)
	default:
		r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
		return token{}, lx.errf(line, col, "unexpected character %q", string(r))
	}
}

func (lx *lexer) lexString(line, col int) (token, error) {
	quote := lx.advance()
	var sb strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return token{}, lx.errf(line, col, "unterminated string literal")
		}
		c := lx.advance()
		if c == quote {
			return token{typ: tokString, text: sb.String(), line: line, col: col}, nil
		}
		if c == '\n' {
			return token{}, lx.errf(line, col, "unterminated string literal")
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if lx.pos >= len(lx.src) {
			return token{}, lx.errf(line, col, "unterminated string literal")
		}
		switch e := lx.advance(); e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		case '0':
			sb.WriteByte(0)
		default:
			return token{}, lx.errf(lx.line, lx.col, "unsupported escape \\%s", string(e))
		}
	}
}

func (lx *lexer) lexNumber(line, col int) (token, error) {
	start := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
		lx.advance()
	}
	if lx.peekByte() == '.' {
		lx.advance()
		if lx.peekByte() < '0' || lx.peekByte() > '9' {
			return token{}, lx.errf(line, col, "malformed number")
		}
		for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
			lx.advance()
		}
	}
	if b := lx.peekByte(); b == 'e' || b == 'E' {
		lx.advance()
		if b := lx.peekByte(); b == '+' || b == '-' {
			lx.advance()
		}
		if lx.peekByte() < '0' || lx.peekByte() > '9' {
			return token{}, lx.errf(line, col, "malformed number")
		}
		for lx.pos < len(lx.src) && lx.src[lx.pos] >= '0' && lx.src[lx.pos] <= '9' {
			lx.advance()
		}
	}
	return token{typ: tokNumber, text: lx.src[start:lx.pos], line: line, col: col}, nil
}

func (lx *lexer) lexIdent(line, col int) (token, error) {
	start := lx.pos
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isIdentPart(r) {
			break
		}
		for i := 0; i < size; i++ {
			lx.advance()
		}
	}
	text := lx.src[start:lx.pos]
	if kw, ok := keywords[text]; ok {
		return token{typ: kw, text: text, line: line, col: col}, nil
	}
	return token{typ: tokIdent, text: text, line: line, col: col}, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
