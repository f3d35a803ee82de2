package exportsvc

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

var rosterHeader = []interface{}{"Section", "Name", "Email", "Parent", "Parent Email"}

// WriteRoster writes an XLSX roster to w: one sheet per class, one row per student.
func WriteRoster(ctx context.Context, store core.Store, w io.Writer) error {
	dir := school.NewDirectory(store)
	classes, err := dir.Classes(ctx)
	if err != nil {
		return err
	}
	students, err := dir.Students(ctx)
	if err != nil {
		return err
	}
	parents, err := dir.Parents(ctx)
	if err != nil {
		return err
	}
	parentOf := make(map[string]school.Parent, len(parents))
	for _, p := range parents {
		for _, child := range p.Children {
			parentOf[child] = p
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const defaultSheet = "Sheet1"
	if len(classes) == 0 {
		if err := f.SetSheetRow(defaultSheet, "A1", &rosterHeader); err != nil {
			return errors.Wrap(err, "writing header")
		}
	}
	for i, class := range classes {
		sheet := sheetName(class.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return errors.Wrapf(err, "renaming sheet %s", sheet)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "creating sheet %s", sheet)
		}
		if err := f.SetSheetRow(sheet, "A1", &rosterHeader); err != nil {
			return errors.Wrapf(err, "writing %s header", sheet)
		}

		row := 2
		for _, s := range students {
			if s.Klass != class.ID {
				continue
			}
			p := parentOf[s.ID]
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{s.Section, s.Name, s.Email, p.Name, p.Email}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return errors.Wrapf(err, "writing %s row %d", sheet, row)
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing roster")
	}
	return nil
}

// sheetName drops the characters excel does not allow in sheet names (max 31 chars).
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, name)
	if len(name) > 31 {
		name = name[:31]
	}
	if name == "" {
		name = "Class"
	}
	return name
}
