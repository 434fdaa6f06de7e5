// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package syntax

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jpath/internal/escape"
	"go4.org/mem"
)

/*
Grammar:

     query = "$" { step }
      step = "." name
      step = "[" selector "]"
      name = WORD | "*" | quoted
  selector = "*"
  selector = "?(" script ")"
  selector = "(" script ")"
  selector = slice
  selector = term { "," term }
      term = quoted | NUMBER | WORD | "(" script ")"
     slice = [ INDEX ] ":" [ INDEX ] [ ":" [ INDEX ] ]
    script = primary [ op primary ]
   primary = "@" { step } | quoted | NUMBER | call
      call = WORD "(" [ arg { "," arg } ] ")"
       arg = quoted | NUMBER | "true" | "false" | "null"
        op = "==" | "!=" | "<" | "<=" | ">" | ">="
    quoted = "'" QTEXT "'" | '"' DTEXT '"'

      WORD = RE `\w+`
     INDEX = RE `-?\d+`
    NUMBER = RE `-?\d+(\.\d+)?([eE][+-]?\d+)?`
     QTEXT = { any text not containing a single quote }
     DTEXT = { JSON string text, escape sequences allowed }

A selector consisting of one quoted name or word is a member lookup,
equivalent to the dotted form. Whitespace is permitted between the tokens
of a script. The textual form derives from:

	https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// Parse parses s as a query expression.
func Parse(s string) (*Path, error) {
	p := &parser{input: s}
	if !p.eat("$") {
		return nil, p.errf("missing root marker")
	}
	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	if p.pos != len(s) {
		return nil, p.errf("invalid path step")
	}
	return &Path{Steps: steps}, nil
}

// MustParse parses s as a query expression, and panics if parsing fails.
// This is intended for use with static queries known to be valid.
func MustParse(s string) *Path {
	q, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("syntax: Parse(%q): %v", s, err))
	}
	return q
}

// A ParseError is the concrete type of errors reported by Parse.
type ParseError struct {
	Offset int    // byte offset in the input where the error occurred
	Msg    string // description of the error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Offset, e.Msg)
}

type parser struct {
	input string
	pos   int
}

func (p *parser) rest() string { return p.input[p.pos:] }

// eat consumes text if it is next in the input.
func (p *parser) eat(text string) bool {
	if strings.HasPrefix(p.rest(), text) {
		p.pos += len(text)
		return true
	}
	return false
}

// token consumes the leading match of re, which must be anchored.
func (p *parser) token(re *regexp.Regexp) (string, bool) {
	m := re.FindString(p.rest())
	if m == "" {
		return "", false
	}
	p.pos += len(m)
	return m, true
}

// space consumes horizontal whitespace.
func (p *parser) space() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// parseSteps consumes path steps as long as one begins at the input.
func (p *parser) parseSteps() ([]Step, error) {
	var steps []Step
	for {
		var pred Predicate
		var err error
		switch {
		case p.eat("."):
			pred, err = p.parseName()
		case p.eat("["):
			pred, err = p.parseSelector()
			if err == nil && !p.eat("]") {
				err = p.errf("missing close bracket")
			}
		default:
			return steps, nil
		}
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Pred: pred})
	}
}

func (p *parser) parseName() (Predicate, error) {
	if p.eat("*") {
		return Wildcard{}, nil
	}
	if s, ok, err := p.quoted(); err != nil {
		return nil, err
	} else if ok {
		return Key(s), nil
	}
	if w, ok := p.token(wordRE); ok {
		return Key(w), nil
	}
	return nil, p.errf("invalid name")
}

func (p *parser) parseSelector() (Predicate, error) {
	if p.eat("*") {
		return Wildcard{}, nil
	}
	if p.eat("?(") {
		s, err := p.parseScript()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, p.errf("missing close paren")
		}
		return Filter{Expr: s}, nil
	}

	// A parenthesized script alone is a computed index; followed by a
	// comma it begins a list like any other term.
	if p.eat("(") {
		s, err := p.parseScript()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, p.errf("missing close paren")
		}
		if !p.eat(",") {
			return Index{Expr: s}, nil
		}
		return p.parseTerms(Union{s})
	}

	// A leading ":" or an index followed by ":" begins a slice.
	mark := p.pos
	lo, hasLo := p.index()
	if p.eat(":") {
		out := Slice{Hi: NoBound, Step: 1}
		if hasLo {
			out.Lo = lo
		}
		if hi, ok := p.index(); ok {
			out.Hi = hi
		}
		if p.eat(":") {
			if step, ok := p.index(); ok {
				out.Step = step
			}
		}
		return out, nil
	}
	p.pos = mark

	terms, err := p.parseTerms(nil)
	if err != nil {
		return nil, err
	}
	if len(terms) == 1 {
		// A single quoted name or word selects a member, as the dotted
		// form does. Numbers and scripts keep their list behavior.
		if s, ok := terms[0].(StringLit); ok {
			return Key(s), nil
		}
	}
	return terms, nil
}

// parseTerms consumes a comma-separated list of terms, appending to terms.
func (p *parser) parseTerms(terms Union) (Union, error) {
	for {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		if !p.eat(",") {
			return terms, nil
		}
	}
}

func (p *parser) parseTerm() (Script, error) {
	if s, ok, err := p.quoted(); err != nil {
		return nil, err
	} else if ok {
		return StringLit(s), nil
	}
	if n, ok := p.number(); ok {
		return NumberLit(n), nil
	}
	if p.eat("(") {
		s, err := p.parseScript()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, p.errf("missing close paren")
		}
		return s, nil
	}
	if w, ok := p.token(wordRE); ok {
		return StringLit(w), nil
	}
	return nil, p.errf("invalid selector")
}

func (p *parser) parseScript() (Script, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.space()
	op, ok := p.parseOp()
	if !ok {
		return lhs, nil
	}
	rhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	p.space()
	return Cmp{Op: op, LHS: lhs, RHS: rhs}, nil
}

var opToken = []struct {
	text string
	op   Op
}{
	// Two-byte operators are listed before their one-byte prefixes.
	{"==", Eq}, {"!=", Ne}, {"<=", Le}, {">=", Ge}, {"<", Lt}, {">", Gt},
}

func (p *parser) parseOp() (Op, bool) {
	for _, t := range opToken {
		if p.eat(t.text) {
			return t.op, true
		}
	}
	return Invalid, false
}

func (p *parser) parsePrimary() (Script, error) {
	p.space()
	if p.eat("@") {
		steps, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		if len(steps) == 0 {
			return Self{}, nil
		}
		return Rel{Steps: steps}, nil
	}
	if s, ok, err := p.quoted(); err != nil {
		return nil, err
	} else if ok {
		return StringLit(s), nil
	}
	if n, ok := p.number(); ok {
		return NumberLit(n), nil
	}
	if w, ok := p.token(wordRE); ok {
		if !p.eat("(") {
			return nil, p.errf("expected call arguments")
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if !p.eat(")") {
			return nil, p.errf("missing close paren")
		}
		return Call{Name: w, Args: args}, nil
	}
	return nil, p.errf("invalid script expression")
}

func (p *parser) parseArgs() ([]any, error) {
	p.space()
	if strings.HasPrefix(p.rest(), ")") {
		return nil, nil
	}
	var args []any
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.space()
		if !p.eat(",") {
			break
		}
	}
	return args, nil
}

func (p *parser) parseArg() (any, error) {
	p.space()
	if s, ok, err := p.quoted(); err != nil {
		return nil, err
	} else if ok {
		return s, nil
	}
	if n, ok := p.number(); ok {
		return n, nil
	}
	switch {
	case p.eat("true"):
		return true, nil
	case p.eat("false"):
		return false, nil
	case p.eat("null"):
		return nil, nil
	}
	return nil, p.errf("invalid argument")
}

// quoted consumes a quoted name or string literal. Single-quoted text is
// taken verbatim; double-quoted text is unescaped as a JSON string.
func (p *parser) quoted() (string, bool, error) {
	if m := squoteRE.FindStringSubmatch(p.rest()); m != nil {
		p.pos += len(m[0])
		return m[1], true, nil
	}
	if m := dquoteRE.FindStringSubmatch(p.rest()); m != nil {
		dec, err := escape.Unquote(mem.S(m[1]))
		if err != nil {
			return "", false, p.errf("invalid string: %v", err)
		}
		p.pos += len(m[0])
		return string(dec), true, nil
	}
	if strings.HasPrefix(p.rest(), "'") || strings.HasPrefix(p.rest(), `"`) {
		return "", false, p.errf("unterminated string")
	}
	return "", false, nil
}

// index consumes an integer index.
func (p *parser) index() (int, bool) {
	m := indexRE.FindString(p.rest())
	if m == "" {
		return 0, false
	}
	z, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	p.pos += len(m)
	return z, true
}

// number consumes a numeric literal.
func (p *parser) number() (float64, bool) {
	m := numberRE.FindString(p.rest())
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	p.pos += len(m)
	return f, true
}

var (
	wordRE   = regexp.MustCompile(`^\w+`)
	indexRE  = regexp.MustCompile(`^-?\d+`)
	numberRE = regexp.MustCompile(`^-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	squoteRE = regexp.MustCompile(`^'([^']*)'`)
	dquoteRE = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"`)
)
