package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/template"
)

// should split static parts and trimmed placeholder names
func TestCompileSplit(t *testing.T) {
	p, err := template.Compile(`<div class="greeting">Hello {{ name }}! {{title}}</div>`)
	require.NoError(t, err)

	assert.Equal(t, 2, p.PlaceholderCount())
	assert.Equal(t, []string{
		`<div class="greeting">Hello `,
		`! `,
		`</div>`,
	}, p.StaticParts)
	assert.Equal(t, []string{"name", "title"}, p.Placeholders)
}

// should keep the parts/placeholders length invariant at the edges
func TestCompileEdgePlaceholders(t *testing.T) {
	p, err := template.Compile(`{{a}}-{{b}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "-", ""}, p.StaticParts)
	assert.Equal(t, []string{"a", "b"}, p.Placeholders)
}

// should compile a template with no placeholders into a single part
func TestCompileStaticOnly(t *testing.T) {
	p, err := template.Compile(`<p>static</p>`)
	require.NoError(t, err)

	assert.Equal(t, 0, p.PlaceholderCount())
	assert.Equal(t, []string{`<p>static</p>`}, p.StaticParts)
}

// should reject unclosed and mismatched placeholders
func TestCompileInvalid(t *testing.T) {
	for _, src := range []string{
		"a {{ name",
		"a { b",
		"a }} b",
		"{{x}} trailing {",
	} {
		_, err := template.Compile(src)
		assert.ErrorIs(t, err, template.ErrInvalidMarkup, "src=%q", src)
	}
}

// should allow a lone closing brace in static text
func TestCompileLoneCloseBrace(t *testing.T) {
	p, err := template.Compile("a } b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a } b"}, p.StaticParts)
}

// should concatenate parts and values in order
func TestRenderRoundTrip(t *testing.T) {
	p, err := template.Compile(`Hello {{ name }}, welcome to {{ place }}!`)
	require.NoError(t, err)

	out, err := template.Render(p, []string{"Ada", "Ripple"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, welcome to Ripple!", out)
}

// should fail rendering with the wrong value count
func TestRenderMismatchedValues(t *testing.T) {
	p, err := template.Compile(`{{a}}{{b}}`)
	require.NoError(t, err)

	_, err = template.Render(p, []string{"only"})
	assert.ErrorIs(t, err, template.ErrMismatchedValues)
}

// should return the identical cached plan for identical sources
func TestMustCompileCaches(t *testing.T) {
	a := template.MustCompile(`<b>{{x}}</b>`)
	b := template.MustCompile(`<b>{{x}}</b>`)
	assert.Same(t, a, b)
}
