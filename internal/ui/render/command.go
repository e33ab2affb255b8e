// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tabq/internal/ui/styles"
)

// Prompt starts the command line.
const Prompt = "> "

// caretPlaceholder stands in for the caret at end of line.
const caretPlaceholder = " "

var sqlLexer = func() chroma.Lexer {
	l := lexers.Get("sql")
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}()

// CommandLine renders the editor text with the caret cell emphasized. When
// the line is wider than width, it scrolls to keep the caret visible.
func CommandLine(text []rune, cursor int, theme *styles.Theme, width int) string {
	cursor = min(max(cursor, 0), len(text))
	tokenStyles := runeStyles(text, theme)

	avail := max(1, width-len(Prompt))
	start := 0
	if cursor+1 > avail {
		start = cursor + 1 - avail
	}
	end := min(len(text), start+avail)

	var sb strings.Builder
	sb.WriteString(theme.Prompt.Render(Prompt))
	for i := start; i < end; {
		if i == cursor {
			sb.WriteString(theme.Caret.Render(string(text[i])))
			i++
			continue
		}
		// batch runs of same-styled runes up to the caret
		j := i + 1
		for j < end && j != cursor && tokenStyles[j] == tokenStyles[i] {
			j++
		}
		sb.WriteString(styleFor(tokenStyles[i], theme).Render(string(text[i:j])))
		i = j
	}
	if cursor == len(text) {
		sb.WriteString(theme.Caret.Render(caretPlaceholder))
	}
	return sb.String()
}

type tokenClass int

const (
	classPlain tokenClass = iota
	classKeyword
	classString
	classNumber
	classComment
	classFunction
	classOperator
)

// runeStyles classifies every rune of text by SQL token type.
func runeStyles(text []rune, theme *styles.Theme) []tokenClass {
	out := make([]tokenClass, len(text))
	if !theme.Highlight || len(text) == 0 {
		return out
	}
	it, err := sqlLexer.Tokenise(nil, string(text))
	if err != nil {
		return out
	}
	pos := 0
	for tok := it(); tok != chroma.EOF && pos < len(out); tok = it() {
		class := classify(tok.Type)
		for range tok.Value {
			if pos >= len(out) {
				break
			}
			out[pos] = class
			pos++
		}
	}
	return out
}

func classify(tt chroma.TokenType) tokenClass {
	switch {
	case tt.InCategory(chroma.Keyword):
		return classKeyword
	case tt.InSubCategory(chroma.LiteralString):
		return classString
	case tt.InSubCategory(chroma.LiteralNumber):
		return classNumber
	case tt.InCategory(chroma.Comment):
		return classComment
	case tt == chroma.NameFunction || tt == chroma.NameBuiltin:
		return classFunction
	case tt.InCategory(chroma.Operator) || tt == chroma.Punctuation:
		return classOperator
	}
	return classPlain
}

func styleFor(c tokenClass, theme *styles.Theme) lipgloss.Style {
	switch c {
	case classKeyword:
		return theme.SyntaxKeyword
	case classString:
		return theme.SyntaxString
	case classNumber:
		return theme.SyntaxNumber
	case classComment:
		return theme.SyntaxComment
	case classFunction:
		return theme.SyntaxFunction
	case classOperator:
		return theme.SyntaxOperator
	}
	return theme.Input
}
