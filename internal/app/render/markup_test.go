package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	in := `<h2>Cláusula 1</h2>
<p>O colaborador &amp; a <b>empresa</b>   acordam:</p>
<ul><li>zelar pelo equipamento;</li><li>devolver ao final.</li></ul>
<script>alert(1)</script><style>p{}</style>
<p>Fim<br>linha</p>`

	want := "Cláusula 1\n\n" +
		"O colaborador & a empresa acordam:\n\n" +
		"zelar pelo equipamento;\n\n" +
		"devolver ao final.\n\n" +
		"Fim\n\n" +
		"linha"
	assert.Equal(t, want, StripMarkup(in))
}

func TestStripMarkupPlainText(t *testing.T) {
	assert.Equal(t, "just text", StripMarkup("just   text"))
	assert.Equal(t, "", StripMarkup(""))
}
