package codec

import (
	"fmt"
	"strings"

	"github.com/esdl/esn_core/internal/pkg/nts"
)

// ParseTupleLiteral parses a stringified value tuple such as "(0, inf)",
// "('fuel', 'electricity')" or the nested series form "(0, (10, 20, 30))"
// into its members. Members are nts.Float values, strings or nested
// slices. Trailing commas are accepted; unbalanced parentheses or quotes
// are reported as errors.
func ParseTupleLiteral(s string) ([]interface{}, error) {
	p := &literalParser{input: s}
	p.skipSpace()
	tuple, err := p.parseTuple()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("literal %q: trailing characters at offset %d", s, p.pos)
	}
	return tuple, nil
}

type literalParser struct {
	input string
	pos   int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *literalParser) parseTuple() ([]interface{}, error) {
	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return nil, fmt.Errorf("literal %q: expected '(' at offset %d", p.input, p.pos)
	}
	p.pos++

	members := make([]interface{}, 0, 2)
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("literal %q: unbalanced parentheses", p.input)
		}
		if p.input[p.pos] == ')' {
			p.pos++
			return members, nil
		}

		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, member)

		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("literal %q: unbalanced parentheses", p.input)
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
		case ')':
		default:
			return nil, fmt.Errorf("literal %q: unexpected %q at offset %d", p.input, p.input[p.pos], p.pos)
		}
	}
}

func (p *literalParser) parseMember() (interface{}, error) {
	switch p.input[p.pos] {
	case '(':
		return p.parseTuple()
	case '\'', '"':
		return p.parseQuoted()
	default:
		return p.parseToken()
	}
}

func (p *literalParser) parseQuoted() (string, error) {
	quote := p.input[p.pos]
	p.pos++
	start := p.pos
	for p.pos < len(p.input) {
		if p.input[p.pos] == quote {
			s := p.input[start:p.pos]
			p.pos++
			return s, nil
		}
		p.pos++
	}
	return "", fmt.Errorf("literal %q: unterminated quote", p.input)
}

func (p *literalParser) parseToken() (interface{}, error) {
	start := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune(",()", rune(p.input[p.pos])) {
		p.pos++
	}
	token := strings.TrimSpace(p.input[start:p.pos])
	if token == "" {
		return nil, fmt.Errorf("literal %q: empty member at offset %d", p.input, start)
	}
	f, err := nts.ParseLiteral(token)
	if err != nil {
		// unquoted non-numeric tokens pass through as strings
		return token, nil
	}
	return f, nil
}
