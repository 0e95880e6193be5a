package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteExactTokens(t *testing.T) {
	values := map[string]string{
		Token("NOME"): "Ana Silva",
		Token("CPF"):  "111.222.333-44",
	}

	got := Substitute("Name: ${NOME}, CPF: ${CPF}", values)
	assert.Equal(t, "Name: Ana Silva, CPF: 111.222.333-44", got)
}

func TestSubstituteLeavesLookalikesAlone(t *testing.T) {
	values := map[string]string{Token("NOME"): "Ana Silva"}

	cases := map[string]string{
		"${NOME_SOCIAL}":  "${NOME_SOCIAL}",
		"${nome}":         "${nome}",
		"$NOME":           "$NOME",
		"{NOME}":          "{NOME}",
		"${NOME}${NOME}":  "Ana SilvaAna Silva",
		"x ${NOME} y":     "x Ana Silva y",
		"${NOME} ${NOMES": "Ana Silva ${NOMES",
	}
	for in, want := range cases {
		assert.Equal(t, want, Substitute(in, values), in)
	}
}

func TestSubstituteDoesNotRescanValues(t *testing.T) {
	values := map[string]string{
		Token("A"): "${B}",
		Token("B"): "b",
	}
	assert.Equal(t, "${B} b", Substitute("${A} ${B}", values))
}

func TestIndexedTokens(t *testing.T) {
	assert.Equal(t, "${EQUIPAMENTO_1}", ItemToken(1))
	assert.Equal(t, "${VALOR_12}", ValueToken(12))
}
