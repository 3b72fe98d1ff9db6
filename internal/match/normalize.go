package match

import (
	"strings"
	"unicode"
)

// Accessor prefixes recognized in front of a field name.
const (
	PrefixGet  = "Get"
	PrefixSet  = "Set"
	PrefixWith = "With"
)

// NormalizeIdent folds an identifier to a comparable form: CamelCase is
// tokenized, separators (_, -, space) are dropped and everything is lower-cased.
//
//   - "modelID", "model_id", "ModelId" -> "modelid"
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// SameIdent reports whether two identifiers name the same thing once normalized.
func SameIdent(a, b string) bool {
	return NormalizeIdent(a) == NormalizeIdent(b)
}

// AccessorSubject strips prefix from method and returns the remaining
// identifier. ok is false when method does not start with prefix or nothing
// is left after it. An empty prefix returns method unchanged.
func AccessorSubject(method, prefix string) (subject string, ok bool) {
	if prefix == "" {
		return method, method != ""
	}

	subject, ok = strings.CutPrefix(method, prefix)
	if !ok || subject == "" {
		return "", false
	}

	// "Settle" is not a setter for "tle"
	if r := []rune(subject)[0]; !unicode.IsUpper(r) && r != '_' {
		return "", false
	}

	return subject, true
}

// LowerFirst turns a Go identifier into the default record key:
// "Brand" -> "brand", "ID" -> "id", "URLPath" -> "urlPath".
func LowerFirst(s string) string {
	tokens := tokenizeCamelCase(s)
	if len(tokens) == 0 {
		return ""
	}

	tokens[0] = strings.ToLower(tokens[0])

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into lowercase tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "brand_name" -> ["brand", "name"]
func tokenizeCamelCase(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "brandName": lower -> upper
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": end of an acronym
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
