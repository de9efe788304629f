package render

import (
	"fmt"

	"github.com/GhostKellz/ripple/template"
)

// Build compiles a template plan into a render program. Static parts are
// scanned for tags, comments and text runs; a dynamic_text op is placed
// between consecutive parts for each placeholder. Hydration ids are
// assigned in document order starting at 1, one per element open or
// self-close.
func Build(plan *template.Plan) (*Program, error) {
	b := &builder{nextHID: 1}
	for i, part := range plan.StaticParts {
		if err := b.scanPart(part); err != nil {
			return nil, err
		}
		if i < len(plan.Placeholders) {
			b.emit(Op{Kind: OpDynamicText, Slot: i})
		}
	}
	if len(b.tags) != 0 {
		return nil, fmt.Errorf("%w: unclosed <%s>", ErrInvalidMarkup, b.tags[len(b.tags)-1])
	}
	return &Program{Ops: b.ops, MaxHydrationID: b.nextHID - 1}, nil
}

type builder struct {
	ops     []Op
	tags    []string
	nextHID uint32
}

func (b *builder) emit(op Op) {
	b.ops = append(b.ops, op)
}

func (b *builder) scanPart(part string) error {
	i := 0
	for i < len(part) {
		switch {
		case hasPrefixAt(part, i, "<!--"):
			end := indexFrom(part, i+4, "-->")
			if end < 0 {
				return fmt.Errorf("%w: unterminated comment", ErrInvalidMarkup)
			}
			if op, ok := parseMarker(part[i+4 : end]); ok {
				b.emit(op)
			}
			i = end + 3
		case part[i] == '<':
			next, err := b.scanTag(part, i)
			if err != nil {
				return err
			}
			i = next
		default:
			start := i
			for i < len(part) && part[i] != '<' {
				i++
			}
			b.emit(Op{Kind: OpText, Text: part[start:i]})
		}
	}
	return nil
}

// scanTag parses one <tag …>, <tag …/> or </tag> starting at the '<' and
// returns the index past its '>'.
func (b *builder) scanTag(part string, i int) (int, error) {
	i++ // consume '<'
	closing := false
	if i < len(part) && part[i] == '/' {
		closing = true
		i++
	}

	start := i
	for i < len(part) && isTagChar(part[i]) {
		i++
	}
	tag := part[start:i]
	if tag == "" {
		return 0, fmt.Errorf("%w: empty tag name", ErrInvalidMarkup)
	}

	// Attribute region: quotes just toggle, nothing inside them ends the
	// tag.
	var inQuote byte
	selfClosing := false
	for i < len(part) {
		c := part[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			i++
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
			i++
		case '>':
			if closing {
				if len(b.tags) == 0 {
					return 0, fmt.Errorf("%w: </%s> without open", ErrInvalidMarkup, tag)
				}
				top := b.tags[len(b.tags)-1]
				if top != tag {
					return 0, fmt.Errorf("%w: </%s> closes <%s>", ErrInvalidMarkup, tag, top)
				}
				b.tags = b.tags[:len(b.tags)-1]
				b.emit(Op{Kind: OpCloseElement, Tag: tag})
				return i + 1, nil
			}
			hid := b.nextHID
			b.nextHID++
			if selfClosing {
				b.emit(Op{Kind: OpSelfElement, Tag: tag, HID: hid})
			} else {
				b.emit(Op{Kind: OpOpenElement, Tag: tag, HID: hid})
				b.tags = append(b.tags, tag)
			}
			return i + 1, nil
		case '/':
			selfClosing = true
			i++
		default:
			selfClosing = false
			i++
		}
	}
	return 0, fmt.Errorf("%w: unterminated tag <%s", ErrInvalidMarkup, tag)
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == ':'
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}

func indexFrom(s string, i int, sub string) int {
	for ; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
