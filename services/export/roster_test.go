package exportsvc

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/doonites/schoolhub/core/school"
	"github.com/doonites/schoolhub/tests"
)

func TestWriteRoster(t *testing.T) {
	ctx := context.Background()
	store := testutil.SeededStore(t)
	dir := school.NewDirectory(store)
	classes, _ := dir.Classes(ctx)
	students, _ := dir.Students(ctx)
	parents, _ := dir.Parents(ctx)

	var buf bytes.Buffer
	if err := WriteRoster(ctx, store, &buf); err != nil {
		t.Fatalf("WriteRoster() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("excelize.OpenReader() error = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != len(classes) {
		t.Fatalf("sheets = %v, want one per class", sheets)
	}

	rows, err := f.GetRows(classes[0].Name)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if want := 1 + 6*len(classes[0].Sections); len(rows) != want {
		t.Fatalf("len(rows) = %d, want %d", len(rows), want)
	}
	if rows[0][1] != "Name" {
		t.Errorf("header = %v", rows[0])
	}
	first := rows[1]
	if first[1] != students[0].Name || first[2] != students[0].Email || first[4] != parents[0].Email {
		t.Errorf("first row = %v", first)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Class 6", want: "Class 6"},
		{name: "Class 6/A: [Science]", want: "Class 6A Science"},
		{name: "", want: "Class"},
		{name: "A very long class name that excel would reject", want: "A very long class name that exc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sheetName(tt.name); got != tt.want {
				t.Errorf("sheetName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
