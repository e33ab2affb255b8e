// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is the classification of one submitted line.
type ParseResult struct {
	// Text is the input with surrounding whitespace removed
	Text string

	// RawInput is the original input string
	RawInput string

	// Blank is true when Text is empty
	Blank bool

	// Command is the matched token (nil for query text)
	Command *Command
}

// Action returns the flow to run for the line.
func (r ParseResult) Action() Action {
	if r.Command == nil {
		return ActionQuery
	}
	return r.Command.Action
}

// =============================================================================
// PARSER
// =============================================================================

// Parser classifies submitted lines against a registry.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse trims input and looks the whole line up as a token. Anything that is
// not a token is left untouched apart from the trim.
func (p *Parser) Parse(input string) ParseResult {
	text := strings.TrimSpace(input)
	result := ParseResult{
		Text:     text,
		RawInput: input,
		Blank:    text == "",
	}
	if result.Blank {
		return result
	}
	result.Command = p.registry.Get(text)
	return result
}

// Registry returns the registry the parser consults.
func (p *Parser) Registry() *Registry { return p.registry }
