package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	out, err := HTML("# Checkout PRD\n\nSome **bold** scope.")
	assert.NoError(t, err)
	assert.Contains(t, out, "<h1>Checkout PRD</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestHTML_GFMTable(t *testing.T) {
	out, err := HTML("| Metric | Target |\n| --- | --- |\n| Drop-off | -20% |")
	assert.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>-20%</td>")
}

func TestHTML_Empty(t *testing.T) {
	out, err := HTML("")
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestDocument(t *testing.T) {
	out, err := Document(`PRD <v2> & "final"`, "body text")
	assert.NoError(t, err)
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>PRD &lt;v2&gt; &amp; &#34;final&#34;</title>")
	assert.Contains(t, out, "<p>body text</p>")
}
