// Package discovery finds class declarations in source files without
// executing them.
//
// Scanning is lexical: a chroma lexer classifies the text into tokens and a
// class is reported wherever the keyword "class" is followed by whitespace and
// a name. Comments and string literals are separate token kinds, so
// declarations mentioned inside them are never reported.
package discovery

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alexisbeaulieu97/themekit/internal/filescan"
)

const (
	classKeyword = "class"
	phpOpenTag   = "<?php\n"
)

// ExtractClassNames returns the class names declared in PHP source, in order
// of appearance. Snippets without an opening tag are treated as code.
func ExtractClassNames(source string) ([]string, error) {
	return extract(phpLexer(), source)
}

// ExtractClassNamesFor is like ExtractClassNames but picks the lexer from the
// file name, falling back to PHP when nothing matches.
func ExtractClassNamesFor(filename, source string) ([]string, error) {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = phpLexer()
	}
	return extract(lexer, source)
}

// ClassesInFile reads path and returns the class names it declares.
func ClassesInFile(path string) ([]string, error) {
	source, err := filescan.ReadText(path)
	if err != nil {
		return nil, err
	}
	return ExtractClassNamesFor(path, source)
}

func phpLexer() chroma.Lexer {
	if lexer := lexers.Get("php"); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

func extract(lexer chroma.Lexer, source string) ([]string, error) {
	if isPHP(lexer) && !strings.Contains(source, "<?") {
		source = phpOpenTag + source
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("tokenise with %s lexer: %w", lexer.Config().Name, err)
	}

	tokens := significant(iterator.Tokens())
	classes := []string{}
	for i := 2; i < len(tokens); i++ {
		if isClassKeyword(tokens[i-2]) && isWhitespace(tokens[i-1]) && isName(tokens[i]) {
			classes = append(classes, strings.TrimLeft(strings.TrimSpace(tokens[i].Value), `\`))
		}
	}
	return classes, nil
}

// significant drops empty tokens some lexers emit between groups.
func significant(tokens []chroma.Token) []chroma.Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok.Value == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isPHP(lexer chroma.Lexer) bool {
	cfg := lexer.Config()
	return cfg != nil && strings.EqualFold(cfg.Name, "php")
}

func isClassKeyword(tok chroma.Token) bool {
	return tok.Type.InCategory(chroma.Keyword) && strings.EqualFold(tok.Value, classKeyword)
}

func isWhitespace(tok chroma.Token) bool {
	return tok.Type.InCategory(chroma.Text) && strings.TrimSpace(tok.Value) == ""
}

func isName(tok chroma.Token) bool {
	return tok.Type.InCategory(chroma.Name) && strings.TrimSpace(tok.Value) != ""
}
