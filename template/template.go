// Package template splits marked-up string literals into their static and
// dynamic segmentation. Placeholders use the {{ name }} form; everything
// between placeholders is kept verbatim.
package template

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMarkup reports an unclosed or mismatched placeholder.
	ErrInvalidMarkup = errors.New("template: invalid markup")
	// ErrMismatchedValues reports a value count that does not match the
	// plan's placeholder count.
	ErrMismatchedValues = errors.New("template: mismatched values")
)

// Plan is the compiled segmentation of a template source. The invariant
// len(StaticParts) == len(Placeholders)+1 always holds for a compiled
// plan, even when the source starts or ends with a placeholder (the edge
// parts are then empty strings).
type Plan struct {
	StaticParts  []string
	Placeholders []string
}

func (p *Plan) PlaceholderCount() int {
	return len(p.Placeholders)
}

// Compile scans src for {{ name }} placeholders. Each "{{" must be closed
// by the nearest "}}"; a lone "{" and a "}}" without an opener are both
// rejected. Placeholder names are trimmed of ASCII whitespace.
func Compile(src string) (*Plan, error) {
	plan := &Plan{}
	var static strings.Builder

	i := 0
	for i < len(src) {
		switch src[i] {
		case '{':
			if i+1 >= len(src) || src[i+1] != '{' {
				return nil, fmt.Errorf("%w: lone '{' at offset %d", ErrInvalidMarkup, i)
			}
			end := strings.Index(src[i+2:], "}}")
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed placeholder at offset %d", ErrInvalidMarkup, i)
			}
			name := trimASCII(src[i+2 : i+2+end])
			plan.StaticParts = append(plan.StaticParts, static.String())
			plan.Placeholders = append(plan.Placeholders, name)
			static.Reset()
			i += 2 + end + 2
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				return nil, fmt.Errorf("%w: '}}' without opener at offset %d", ErrInvalidMarkup, i)
			}
			static.WriteByte('}')
			i++
		default:
			static.WriteByte(src[i])
			i++
		}
	}
	plan.StaticParts = append(plan.StaticParts, static.String())
	return plan, nil
}

// Render concatenates parts and values in order.
func Render(p *Plan, values []string) (string, error) {
	if len(values) != len(p.Placeholders) {
		return "", fmt.Errorf("%w: plan wants %d values, got %d",
			ErrMismatchedValues, len(p.Placeholders), len(values))
	}
	var sb strings.Builder
	for i, part := range p.StaticParts {
		sb.WriteString(part)
		if i < len(values) {
			sb.WriteString(values[i])
		}
	}
	return sb.String(), nil
}

func trimASCII(s string) string {
	return strings.Trim(s, " \t\r\n")
}
