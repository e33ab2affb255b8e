// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "testing"

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParseAction(t *testing.T) {
	p := NewParser(NewRegistry())

	tests := []struct {
		input string
		want  Action
	}{
		{"c", ActionCreateTable},
		{"  C  ", ActionCreateTable},
		{"cls", ActionClear},
		{"CLS", ActionClear},
		{"clear", ActionClear},
		{"Clear\t", ActionClear},
		{"cls;", ActionQuery},
		{"c a", ActionQuery},
		{"select * from a", ActionQuery},
		{"SELEC * FROM a", ActionQuery},
	}

	for _, tc := range tests {
		got := p.Parse(tc.input).Action()
		if got != tc.want {
			t.Errorf("Parse(%q).Action() = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseTrim(t *testing.T) {
	p := NewParser(NewRegistry())

	tests := []struct {
		input     string
		wantText  string
		wantBlank bool
	}{
		{"", "", true},
		{"   \t ", "", true},
		{"  select 1  ", "select 1", false},
		{"select 'a  b'", "select 'a  b'", false},
	}

	for _, tc := range tests {
		res := p.Parse(tc.input)
		if res.Text != tc.wantText || res.Blank != tc.wantBlank {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tc.input, res.Text, res.Blank, tc.wantText, tc.wantBlank)
		}
		if res.RawInput != tc.input {
			t.Errorf("Parse(%q).RawInput = %q", tc.input, res.RawInput)
		}
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()

	if cmd := r.Get("CLEAR"); cmd == nil || cmd.Name != "cls" {
		t.Errorf("Get(%q) = %v, want cls", "CLEAR", cmd)
	}
	if cmd := r.Get("select"); cmd != nil {
		t.Errorf("Get(%q) = %v, want nil", "select", cmd)
	}
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{Name: "b", Action: ActionClear})

	all := r.All()
	var names []string
	for _, c := range all {
		names = append(names, c.Name)
	}
	want := []string{"b", "c", "cls"}
	if len(names) != len(want) {
		t.Fatalf("All() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionQuery, "query"},
		{ActionCreateTable, "create-table"},
		{ActionClear, "clear"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.a, got, tc.want)
		}
	}
}
