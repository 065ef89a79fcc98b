package attrindex

import (
	"strings"
	"unicode"
)

// Tokenize splits s on whitespace and ASCII punctuation, lowercases the
// result, and drops empty tokens.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		if unicode.IsSpace(r) {
			return true
		}
		return r <= unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r))
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		lower := strings.ToLower(f)
		if lower != "" {
			tokens = append(tokens, lower)
		}
	}
	return tokens
}

// TextIndex maps tokens to the set of engram ids whose indexed text
// contains them, supporting "any of" and "all of" token-set queries.
type TextIndex struct {
	byToken map[string]map[string]bool
}

// NewTextIndex returns an empty TextIndex.
func NewTextIndex() *TextIndex {
	return &TextIndex{byToken: make(map[string]map[string]bool)}
}

// Add tokenizes text and records engramID under every resulting token.
func (t *TextIndex) Add(text, engramID string) {
	for _, tok := range Tokenize(text) {
		set, ok := t.byToken[tok]
		if !ok {
			set = make(map[string]bool)
			t.byToken[tok] = set
		}
		set[engramID] = true
	}
}

// Remove tokenizes text and drops engramID from every resulting token's
// set, erasing tokens whose set becomes empty.
func (t *TextIndex) Remove(text, engramID string) {
	for _, tok := range Tokenize(text) {
		set, ok := t.byToken[tok]
		if !ok {
			continue
		}
		delete(set, engramID)
		if len(set) == 0 {
			delete(t.byToken, tok)
		}
	}
}

// Search returns the union of engram ids carrying any of query's tokens.
func (t *TextIndex) Search(query string) map[string]bool {
	result := make(map[string]bool)
	for _, tok := range Tokenize(query) {
		for id := range t.byToken[tok] {
			result[id] = true
		}
	}
	return result
}

// SearchAll returns the intersection of engram ids carrying every one of
// query's tokens. An empty query returns an empty result.
func (t *TextIndex) SearchAll(query string) map[string]bool {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return map[string]bool{}
	}

	result := make(map[string]bool)
	for id := range t.byToken[tokens[0]] {
		result[id] = true
	}

	for _, tok := range tokens[1:] {
		set := t.byToken[tok]
		for id := range result {
			if !set[id] {
				delete(result, id)
			}
		}
	}
	return result
}
