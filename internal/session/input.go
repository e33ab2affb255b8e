// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "fmt"

// InputKind enumerates the key actions the console understands.
type InputKind int

const (
	InputIgnored InputKind = iota
	InputQuit
	InputScrollUp
	InputScrollDown
	InputScrollLeft
	InputScrollRight
	InputHome
	InputEnd
	InputPageUp
	InputPageDown
	InputHistoryNext
	InputHistoryPrev
	InputCursorLeft
	InputCursorRight
	InputSubmit
	InputDelete
	InputInsert
)

var inputNames = map[InputKind]string{
	InputIgnored:     "ignored",
	InputQuit:        "quit",
	InputScrollUp:    "scroll-up",
	InputScrollDown:  "scroll-down",
	InputScrollLeft:  "scroll-left",
	InputScrollRight: "scroll-right",
	InputHome:        "home",
	InputEnd:         "end",
	InputPageUp:      "page-up",
	InputPageDown:    "page-down",
	InputHistoryNext: "history-next",
	InputHistoryPrev: "history-prev",
	InputCursorLeft:  "cursor-left",
	InputCursorRight: "cursor-right",
	InputSubmit:      "submit",
	InputDelete:      "delete",
	InputInsert:      "insert",
}

func (k InputKind) String() string {
	if name, ok := inputNames[k]; ok {
		return name
	}
	return fmt.Sprintf("InputKind(%d)", int(k))
}

// Input is one resolved key action. Char is only meaningful for InputInsert.
type Input struct {
	Kind InputKind
	Char rune
}

// Key returns the input for a non-insert action.
func Key(kind InputKind) Input { return Input{Kind: kind} }

// Insert returns the input that types r.
func Insert(r rune) Input { return Input{Kind: InputInsert, Char: r} }

func (in Input) String() string {
	if in.Kind == InputInsert {
		return fmt.Sprintf("insert(%q)", in.Char)
	}
	return in.Kind.String()
}
