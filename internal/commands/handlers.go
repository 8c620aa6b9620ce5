// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the staff directory.
package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/morganforge/alfred/internal/staff"
	"github.com/morganforge/alfred/internal/util"
)

// HelpText is the static usage text returned by /help.
const HelpText = `Command mode (type commands starting with '/'):
/help
/add_staff Full Name | Role | Department | DailyRate
/adjust_salary Full Name | NewDailyRate
/list_staff
/list_staff DepartmentName

Examples:
  /add_staff Olive Grace Perez | Warehouse Supervisor | Warehouse | 585
  /adjust_salary Olive Grace Perez | 585
  /list_staff
  /list_staff Warehouse
`

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelp(ctx context.Context, deps *Deps, args []string) (string, error) {
	return HelpText, nil
}

func handleAddStaff(ctx context.Context, deps *Deps, args []string) (string, error) {
	if len(args) < 4 {
		return "Usage:\n/add_staff Full Name | Role | Department | DailyRate\n" +
			"Example:\n/add_staff Olive Grace Perez | Warehouse Supervisor | Warehouse | 585", nil
	}

	fullName, role, department, rateStr := args[0], args[1], args[2], args[3]
	dailyRate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return fmt.Sprintf("Invalid DailyRate value: '%s'. Please enter a number, e.g., 585", rateStr), nil
	}

	rec := &staff.Record{
		FullName:         fullName,
		Role:             role,
		Department:       department,
		Status:           "active",
		CurrentDailyRate: &dailyRate,
	}
	id, err := deps.Staff.Create(ctx, rec)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Added staff:\n- ID: %d\n- Name: %s\n- Role: %s\n- Department: %s\n- Daily rate: %s PHP",
		id, rec.FullName, rec.Role, rec.Department, util.FloatToString(dailyRate)), nil
}

func handleAdjustSalary(ctx context.Context, deps *Deps, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage:\n/adjust_salary Full Name | NewDailyRate\n" +
			"Example:\n/adjust_salary Olive Grace Perez | 585", nil
	}

	fullName, rateStr := args[0], args[1]
	newRate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return fmt.Sprintf("Invalid NewDailyRate value: '%s'. Please enter a number, e.g., 585", rateStr), nil
	}

	rec, err := deps.Staff.FindByName(ctx, fullName)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return fmt.Sprintf("No staff found with name '%s'.", fullName), nil
	}

	oldRate := "n/a"
	if rec.CurrentDailyRate != nil {
		oldRate = util.FloatToString(*rec.CurrentDailyRate)
	}

	if err := deps.Staff.UpdateRate(ctx, rec.ID, newRate); err != nil {
		return "", err
	}

	return fmt.Sprintf("Updated salary for %s:\n- Old daily rate: %s\n- New daily rate: %s PHP",
		rec.FullName, oldRate, util.FloatToString(newRate)), nil
}

func handleListStaff(ctx context.Context, deps *Deps, args []string) (string, error) {
	var (
		records []staff.Record
		header  string
		err     error
	)

	if len(args) > 0 {
		dept := args[0]
		records, err = deps.Staff.FindByDepartment(ctx, dept)
		header = fmt.Sprintf("Staff in department '%s':", dept)
	} else {
		records, err = deps.Staff.All(ctx)
		header = "All staff:"
	}
	if err != nil {
		return "", err
	}

	if len(records) == 0 {
		return header + "\n(no records found)", nil
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, header)
	for _, r := range records {
		lines = append(lines, formatStaffLine(r))
	}
	return strings.Join(lines, "\n"), nil
}

// formatStaffLine renders one staff record; optional fields appear only
// when present.
func formatStaffLine(r staff.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s | Role: %s", r.FullName, r.Role)
	if r.Department != "" {
		fmt.Fprintf(&b, " | Dept: %s", r.Department)
	}
	if r.CurrentDailyRate != nil && *r.CurrentDailyRate != 0 {
		fmt.Fprintf(&b, " | Daily rate: %s PHP", util.FloatToString(*r.CurrentDailyRate))
	}
	if r.Status != "" {
		fmt.Fprintf(&b, " | Status: %s", r.Status)
	}
	return b.String()
}
