package render

import (
	"sort"
	"strconv"
	"strings"
)

// Placeholder keys understood by structured templates.
const (
	KeyName          = "NOME"
	KeyCPF           = "CPF"
	KeyRG            = "RG"
	KeyAddress       = "ENDERECO"
	KeyCity          = "CIDADE"
	KeyState         = "ESTADO"
	KeyPostalCode    = "CEP"
	KeySignatureDate = "DATA_ASSINATURA"
	KeySignatureHash = "HASH_ASSINATURA"
	KeyClientAddress = "IP_ASSINATURA"
	KeyClientAgent   = "NAVEGADOR"
	KeyTotal         = "VALOR_TOTAL"
	keyItemPrefix    = "EQUIPAMENTO_"
	keyValuePrefix   = "VALOR_"
)

// Token wraps a key as it appears in template text: ${KEY}.
func Token(key string) string {
	return "${" + key + "}"
}

func ItemToken(n int) string  { return Token(keyItemPrefix + strconv.Itoa(n)) }
func ValueToken(n int) string { return Token(keyValuePrefix + strconv.Itoa(n)) }

// Substitute replaces every token of values found in text in a single left-to-right pass.
// Matching is exact and case-sensitive; replaced text is never rescanned.
func Substitute(text string, values map[string]string) string {
	return newReplacer(values).Replace(text)
}

// newReplacer orders tokens longest first so that, at any position, the longest token wins.
func newReplacer(values map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	return strings.NewReplacer(pairs...)
}

func containsAnyToken(text string, values map[string]string) bool {
	if !strings.Contains(text, "${") {
		return false
	}
	for k := range values {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
