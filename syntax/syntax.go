// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package syntax defines the abstract syntax of jpath query expressions,
// along with a parser for their textual form. The engine in the parent
// package consumes the types defined here and does not re-validate them.
package syntax

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jpath/internal/escape"
	"go4.org/mem"
)

// A Path is a parsed query expression: an ordered list of steps applied
// beginning at the document root.
type Path struct {
	Steps []Step
}

// String renders p in a canonical parseable form.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, s := range p.Steps {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// A Step selects children of each node in the current node set by applying
// its predicate.
type Step struct {
	Pred Predicate
}

func (s Step) String() string { return s.Pred.String() }

// A Predicate is a single step's matching rule. The concrete predicate
// types are Key, Index, Filter, Union, Slice, and Wildcard.
type Predicate interface {
	// String renders the predicate as a path step, e.g. ".name" or "[2]".
	String() string

	predicate()
}

// A Key selects the first member of an object having the given name.
type Key string

func (k Key) String() string {
	if nameRE.MatchString(string(k)) {
		return "." + string(k)
	}
	return "[" + quoteText(string(k)) + "]"
}

// An Index selects members or elements whose key or position is computed
// by a script expression, written "[(expr)]".
type Index struct {
	Expr Script
}

func (x Index) String() string { return "[(" + x.Expr.String() + ")]" }

// A Filter keeps the children of a node for which its script expression
// evaluates to a true value, written "[?(expr)]".
type Filter struct {
	Expr Script
}

func (f Filter) String() string { return "[?(" + f.Expr.String() + ")]" }

// A Union selects members or elements by an ordered list of key or index
// expressions, written "[a,b,...]".
type Union []Script

func (u Union) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range u {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// NoBound marks an absent slice bound: a Slice with Hi == NoBound extends
// to the end of the array.
const NoBound = 1 << 30

// A Slice selects a contiguous range of array elements, written
// "[lo:hi]" or "[lo:hi:step]". Either bound may be absent in text.
type Slice struct {
	Lo, Hi int
	Step   int
}

func (s Slice) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(s.Lo))
	sb.WriteByte(':')
	if s.Hi != NoBound {
		sb.WriteString(strconv.Itoa(s.Hi))
	}
	if s.Step != 1 {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(s.Step))
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Wildcard selects all the members or elements of a node.
type Wildcard struct{}

func (Wildcard) String() string { return "[*]" }

func (Key) predicate()      {}
func (Index) predicate()    {}
func (Filter) predicate()   {}
func (Union) predicate()    {}
func (Slice) predicate()    {}
func (Wildcard) predicate() {}

// A Script is a computed sub-expression usable inside index, union, and
// filter predicates. The concrete script types are StringLit, NumberLit,
// Self, Rel, Call, and Cmp.
type Script interface {
	String() string

	script()
}

// A StringLit is a literal string. It evaluates to itself.
type StringLit string

func (s StringLit) String() string { return quoteText(string(s)) }

// A NumberLit is a literal number. It evaluates to itself.
type NumberLit float64

func (n NumberLit) String() string { return formatNumber(float64(n)) }

// Self denotes the node currently under consideration, written "@".
type Self struct{}

func (Self) String() string { return "@" }

// A Rel is a path evaluated relative to the current node, for example
// "@.name" or "@[0].id". An empty step list is equivalent to Self.
type Rel struct {
	Steps []Step
}

func (r Rel) String() string {
	var sb strings.Builder
	sb.WriteByte('@')
	for _, s := range r.Steps {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// A Call invokes the named function on the current node. Args are literal
// constant values (string, float64, bool, or nil) passed to the function
// unmodified.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatArg(arg))
	}
	sb.WriteByte(')')
	return sb.String()
}

// A Cmp compares the values of two scripts. It evaluates to a truth value.
type Cmp struct {
	Op       Op
	LHS, RHS Script
}

func (c Cmp) String() string {
	return c.LHS.String() + " " + c.Op.String() + " " + c.RHS.String()
}

func (StringLit) script() {}
func (NumberLit) script() {}
func (Self) script()      {}
func (Rel) script()       {}
func (Call) script()      {}
func (Cmp) script()       {}

// An Op is a comparison operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Eq                // equal (==)
	Ne                // not equal (!=)
	Lt                // less than (<)
	Le                // less than or equal (<=)
	Gt                // greater than (>)
	Ge                // greater than or equal (>=)
)

var opText = map[Op]string{
	Invalid: "invalid",
	Eq:      "==",
	Ne:      "!=",
	Lt:      "<",
	Le:      "<=",
	Gt:      ">",
	Ge:      ">=",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// quoteText renders s as a quoted name or string literal, preferring
// single quotes and falling back to a double-quoted form when s itself
// contains a single quote.
func quoteText(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	buf := make([]byte, 1, len(s)+2)
	buf[0] = '"'
	buf = escape.Quote(buf, mem.S(s))
	return string(append(buf, '"'))
}

func formatNumber(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func formatArg(arg any) string {
	switch t := arg.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case string:
		return quoteText(t)
	case float64:
		return formatNumber(t)
	default:
		return "invalid"
	}
}

var nameRE = regexp.MustCompile(`^\w+$`)
