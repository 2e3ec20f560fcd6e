package cinedex

import (
	"strings"
	"unicode"
)

// MatchMode controls how a search term is compared with indexed text.
type MatchMode int

const (
	// MatchToken matches whole tokens only.
	MatchToken MatchMode = iota
	// MatchPrefix matches tokens starting with the term ("brave*").
	MatchPrefix
	// MatchSubstring matches the term anywhere in the text ("*brave*").
	MatchSubstring
)

// SearchExpr is a node of a parsed search query.
type SearchExpr interface {
	String() string
	searchExpr()
}

// SearchTerm is a single query term.
type SearchTerm struct {
	Text string
	Mode MatchMode
}

// SearchAnd matches documents matching every operand.
type SearchAnd struct {
	Operands []SearchExpr
}

// SearchOr matches documents matching any operand.
type SearchOr struct {
	Operands []SearchExpr
}

func (*SearchTerm) searchExpr() {}
func (*SearchAnd) searchExpr()  {}
func (*SearchOr) searchExpr()   {}

func (t *SearchTerm) String() string {
	switch t.Mode {
	case MatchPrefix:
		return t.Text + "*"
	case MatchSubstring:
		return "*" + t.Text + "*"
	}
	return t.Text
}

func (a *SearchAnd) String() string { return joinExprs(a.Operands, " AND ") }
func (o *SearchOr) String() string  { return joinExprs(o.Operands, " OR ") }

func joinExprs(exprs []SearchExpr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// ParseSearchQuery parses a full-text query.
//
// Terms separated by whitespace or '+' are implicitly ANDed. The upper-case
// keywords AND and OR combine terms explicitly, AND binding tighter than OR,
// and parentheses group. A plain term matches whole tokens only; a trailing
// '*' turns it into a prefix match and a leading '*' into a substring match.
//
// Returns EINVALID for an empty or malformed query.
func ParseSearchQuery(q string) (SearchExpr, error) {
	p := &queryParser{tokens: lexQuery(q)}
	if len(p.tokens) == 0 {
		return nil, Errorf(EINVALID, "empty search query")
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, Errorf(EINVALID, "unexpected %q in search query", tok)
	}
	return expr, nil
}

func lexQuery(q string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range q {
		switch {
		case unicode.IsSpace(r) || r == '+':
			flush()
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type queryParser struct {
	tokens []string
	pos    int
}

func (p *queryParser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *queryParser) next() string {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *queryParser) parseOr() (SearchExpr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []SearchExpr{first}
	for {
		tok, ok := p.peek()
		if !ok || tok != "OR" {
			break
		}
		p.next()
		operand, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return &SearchOr{Operands: operands}, nil
}

func (p *queryParser) parseAnd() (SearchExpr, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	operands := []SearchExpr{first}
	for {
		tok, ok := p.peek()
		if !ok || tok == ")" || tok == "OR" {
			break
		}
		if tok == "AND" {
			p.next()
		}
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return &SearchAnd{Operands: operands}, nil
}

func (p *queryParser) parsePrimary() (SearchExpr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, Errorf(EINVALID, "search query ends unexpectedly")
	}
	switch tok {
	case "(":
		p.next()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing, ok := p.peek(); !ok || closing != ")" {
			return nil, Errorf(EINVALID, "unbalanced parentheses in search query")
		}
		p.next()
		return expr, nil
	case ")", "AND", "OR":
		return nil, Errorf(EINVALID, "unexpected %q in search query", tok)
	}
	p.next()
	return parseTerm(tok)
}

func parseTerm(word string) (*SearchTerm, error) {
	mode := MatchToken
	text := word
	switch {
	case strings.HasPrefix(text, "*"):
		mode = MatchSubstring
		text = strings.Trim(text, "*")
	case strings.HasSuffix(text, "*"):
		mode = MatchPrefix
		text = strings.TrimRight(text, "*")
	}
	if text == "" {
		return nil, Errorf(EINVALID, "search term %q has no text", word)
	}
	if strings.Contains(text, "*") {
		return nil, Errorf(EINVALID, "wildcard must lead or trail search term %q", word)
	}
	return &SearchTerm{Text: text, Mode: mode}, nil
}
