// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the staff directory.
package commands

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/morganforge/alfred/internal/staff"
)

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	store, err := staff.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewInterpreter(store)
}

func mustExecute(t *testing.T, i *Interpreter, input string) string {
	t.Helper()
	reply, handled, err := i.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", input, err)
	}
	if !handled {
		t.Fatalf("Execute(%q) not handled", input)
	}
	return reply
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"/add_staff Jane | Analyst | Finance | 500", true},
		{"  /help", true},
		{"hello", false},
		{"hello /help", false},
		{"", false},
		{"/", true},
	}

	for _, tc := range tests {
		got := IsCommand(tc.input)
		if got != tc.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
	}{
		{"/help", "/help", nil},
		{"/ADD_STAFF Jane Doe | Analyst", "/add_staff", []string{"Jane Doe", "Analyst"}},
		{"/list_staff Warehouse", "/list_staff", []string{"Warehouse"}},
		{"/adjust_salary  Jane Doe  |  585 ", "/adjust_salary", []string{"Jane Doe", "585"}},
		{"/add_staff a||b", "/add_staff", []string{"a", "b"}},
		{"/", "/", nil},
	}

	for _, tc := range tests {
		got := Parse(tc.input)
		if got.Name != tc.wantName {
			t.Errorf("Parse(%q).Name = %q, want %q", tc.input, got.Name, tc.wantName)
		}
		if !reflect.DeepEqual(got.Args, tc.wantArgs) {
			t.Errorf("Parse(%q).Args = %v, want %v", tc.input, got.Args, tc.wantArgs)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a | b | c", []string{"a", "b", "c"}},
		{"  spaced  |  out  ", []string{"spaced", "out"}},
		{"| leading | | empties |", []string{"leading", "empties"}},
		{"", nil},
		{"single", []string{"single"}},
	}

	for _, tc := range tests {
		got := SplitArgs(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitArgs(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// DISPATCH TESTS
// =============================================================================

func TestExecute_NotACommand(t *testing.T) {
	interp := newTestInterpreter(t)

	reply, handled, err := interp.Execute(context.Background(), "just chatting")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if handled {
		t.Error("plain chat input must not be consumed as a command")
	}
	if reply != "" {
		t.Errorf("unconsumed input should have empty reply, got %q", reply)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	interp := newTestInterpreter(t)

	reply := mustExecute(t, interp, "/unknowncmd")
	if !strings.HasPrefix(reply, "Unknown command: /unknowncmd") {
		t.Errorf("reply = %q, want Unknown command prefix", reply)
	}
	if !strings.Contains(reply, "/help") {
		t.Errorf("reply should point at /help, got %q", reply)
	}
}

func TestExecute_HelpAliases(t *testing.T) {
	interp := newTestInterpreter(t)

	for _, input := range []string{"/help", "/h", "/?", "/HELP"} {
		reply := mustExecute(t, interp, input)
		if reply != HelpText {
			t.Errorf("Execute(%q) should return the help text", input)
		}
	}
}

// =============================================================================
// ADD_STAFF TESTS
// =============================================================================

func TestAddStaff_ThenListByDepartment(t *testing.T) {
	interp := newTestInterpreter(t)

	reply := mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | 500")
	if !strings.Contains(reply, "Jane Doe") || !strings.Contains(reply, "- ID: 1") {
		t.Errorf("add reply should echo fields and id, got %q", reply)
	}

	listing := mustExecute(t, interp, "/list_staff Finance")
	if !strings.Contains(listing, "Jane Doe") {
		t.Errorf("listing should include the new record, got %q", listing)
	}
	if !strings.Contains(listing, "Finance") {
		t.Errorf("listing should name the department, got %q", listing)
	}
}

func TestAddStaff_TooFewFields(t *testing.T) {
	interp := newTestInterpreter(t)

	reply := mustExecute(t, interp, "/add_staff Jane Doe | Analyst")
	if !strings.HasPrefix(reply, "Usage:") {
		t.Errorf("reply = %q, want usage message", reply)
	}

	// Validation failure must leave the store unchanged.
	listing := mustExecute(t, interp, "/list_staff")
	if !strings.Contains(listing, "(no records found)") {
		t.Errorf("store should be unchanged, got %q", listing)
	}
}

func TestAddStaff_NonNumericRate(t *testing.T) {
	interp := newTestInterpreter(t)

	reply := mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | lots")
	if !strings.Contains(reply, "Invalid DailyRate value: 'lots'") {
		t.Errorf("reply = %q, want invalid value message", reply)
	}

	listing := mustExecute(t, interp, "/list_staff")
	if !strings.Contains(listing, "(no records found)") {
		t.Errorf("store should be unchanged, got %q", listing)
	}
}

// =============================================================================
// ADJUST_SALARY TESTS
// =============================================================================

func TestAdjustSalary_UpdatesAndReportsOldRate(t *testing.T) {
	interp := newTestInterpreter(t)
	mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | 500")

	reply := mustExecute(t, interp, "/adjust_salary jane doe | 585")
	if !strings.Contains(reply, "Updated salary for Jane Doe") {
		t.Errorf("reply = %q, want update confirmation", reply)
	}
	if !strings.Contains(reply, "Old daily rate: 500.00") {
		t.Errorf("reply should report the prior value, got %q", reply)
	}
	if !strings.Contains(reply, "New daily rate: 585.00 PHP") {
		t.Errorf("reply should report the new value, got %q", reply)
	}

	listing := mustExecute(t, interp, "/list_staff Finance")
	if !strings.Contains(listing, "585.00") {
		t.Errorf("stored rate should equal the new value, got %q", listing)
	}
}

func TestAdjustSalary_NoMatch(t *testing.T) {
	interp := newTestInterpreter(t)
	mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | 500")

	reply := mustExecute(t, interp, "/adjust_salary Nobody Here | 585")
	if !strings.Contains(reply, "No staff found with name 'Nobody Here'") {
		t.Errorf("reply = %q, want no staff found message", reply)
	}

	// The miss must leave the existing record untouched.
	listing := mustExecute(t, interp, "/list_staff Finance")
	if !strings.Contains(listing, "500.00") {
		t.Errorf("existing rate should be unchanged, got %q", listing)
	}
}

func TestAdjustSalary_NonNumericRate(t *testing.T) {
	interp := newTestInterpreter(t)
	mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | 500")

	reply := mustExecute(t, interp, "/adjust_salary Jane Doe | raise")
	if !strings.Contains(reply, "Invalid NewDailyRate value: 'raise'") {
		t.Errorf("reply = %q, want invalid value message", reply)
	}

	listing := mustExecute(t, interp, "/list_staff Finance")
	if !strings.Contains(listing, "500.00") {
		t.Errorf("rate should be unchanged, got %q", listing)
	}
}

func TestAdjustSalary_TooFewFields(t *testing.T) {
	interp := newTestInterpreter(t)

	reply := mustExecute(t, interp, "/adjust_salary Jane Doe")
	if !strings.HasPrefix(reply, "Usage:") {
		t.Errorf("reply = %q, want usage message", reply)
	}
}

// =============================================================================
// LIST_STAFF TESTS
// =============================================================================

func TestListStaff_All(t *testing.T) {
	interp := newTestInterpreter(t)
	mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | 500")
	mustExecute(t, interp, "/add_staff Olive Grace Perez | Supervisor | Warehouse | 585")

	listing := mustExecute(t, interp, "/list_staff")
	if !strings.HasPrefix(listing, "All staff:") {
		t.Errorf("listing = %q, want All staff header", listing)
	}
	if !strings.Contains(listing, "Jane Doe") || !strings.Contains(listing, "Olive Grace Perez") {
		t.Errorf("listing should include both records, got %q", listing)
	}
	if !strings.Contains(listing, "Status: active") {
		t.Errorf("listing should show status when present, got %q", listing)
	}
}

func TestListStaff_DepartmentFilterIsCaseInsensitive(t *testing.T) {
	interp := newTestInterpreter(t)
	mustExecute(t, interp, "/add_staff Jane Doe | Analyst | Finance | 500")

	listing := mustExecute(t, interp, "/list_staff FINANCE")
	if !strings.Contains(listing, "Jane Doe") {
		t.Errorf("case-insensitive filter should match, got %q", listing)
	}
}

func TestListStaff_EmptyResult(t *testing.T) {
	interp := newTestInterpreter(t)

	listing := mustExecute(t, interp, "/list_staff Nowhere")
	want := "Staff in department 'Nowhere':\n(no records found)"
	if listing != want {
		t.Errorf("listing = %q, want %q", listing, want)
	}
}
