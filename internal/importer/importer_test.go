package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportCSV_WithHeader(t *testing.T) {
	csv := "name,x_size,y_size,z_size,finished_z,stock_offset,only_finish\n" +
		"PLATE_A,400,300,150,140,0,no\n" +
		"PLATE_B,220,180,90,85,2,yes\n"

	result := ImportCSV(writeTemp(t, "jobs.csv", csv))

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}

	a := result.Jobs[0]
	if a.Name != "PLATE_A" || a.Stock.XSize != 400 || a.Stock.FinishedZ != 140 {
		t.Errorf("first job parsed wrong: %+v", a)
	}
	if a.OnlyFinish {
		t.Error("first job should not be only-finish")
	}

	b := result.Jobs[1]
	if !b.OnlyFinish || b.Stock.StockOffset != 2 {
		t.Errorf("second job parsed wrong: %+v", b)
	}
}

func TestImportCSV_SemicolonDelimiter(t *testing.T) {
	csv := "name;x_size;y_size;z_size;finished_z\n" +
		"PART;100;100;50;45\n"

	result := ImportCSV(writeTemp(t, "jobs.csv", csv))

	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d (errors: %v)", len(result.Jobs), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Error("expected a delimiter detection warning")
	}
}

func TestImportCSV_PositionalFallback(t *testing.T) {
	// No header: name, x, y, z, finished z.
	result := ImportCSV(writeTemp(t, "jobs.csv", "RAW_1,120,80,40,36\n"))

	if len(result.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d (errors: %v)", len(result.Jobs), result.Errors)
	}
	if result.Jobs[0].Name != "RAW_1" || result.Jobs[0].Stock.ZSize != 40 {
		t.Errorf("positional parse wrong: %+v", result.Jobs[0])
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	result := ImportCSV(writeTemp(t, "jobs.csv", "name,x_size,y_size\nP,1,2\n"))

	if len(result.Errors) == 0 {
		t.Fatal("expected missing column error")
	}
	if !strings.Contains(result.Errors[0], "Z size") {
		t.Errorf("error should name the missing column: %v", result.Errors[0])
	}
}

func TestImportCSV_BadRowsReported(t *testing.T) {
	csv := "name,x_size,y_size,z_size,finished_z\n" +
		"GOOD,100,100,50,45\n" +
		"BAD,abc,100,50,45\n" +
		"ALSO_GOOD,200,150,60,58\n"

	result := ImportCSV(writeTemp(t, "jobs.csv", csv))

	if len(result.Jobs) != 2 {
		t.Errorf("good rows must survive a bad one, got %d jobs", len(result.Jobs))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 3") {
		t.Errorf("bad row must be reported with its line: %v", result.Errors)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	result := ImportCSV(writeTemp(t, "jobs.csv", "  \n"))
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSV_UnnamedJobsNumbered(t *testing.T) {
	csv := "x_size,y_size,z_size,finished_z\n100,100,50,45\n200,150,60,58\n"

	result := ImportCSV(writeTemp(t, "jobs.csv", csv))

	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d (errors: %v)", len(result.Jobs), result.Errors)
	}
	if result.Jobs[0].Name != "JOB_1" || result.Jobs[1].Name != "JOB_2" {
		t.Errorf("unnamed jobs should be numbered: %q, %q", result.Jobs[0].Name, result.Jobs[1].Name)
	}
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "x_size", "y_size", "z_size", "finished_z"},
		{"XLS_A", 400, 300, 150, 140},
		{"XLS_B", 220, 180, 90, 85},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result := ImportFile(path)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(result.Jobs))
	}
	if result.Jobs[1].Name != "XLS_B" || result.Jobs[1].Stock.FinishedZ != 85 {
		t.Errorf("excel job parsed wrong: %+v", result.Jobs[1])
	}
}

func TestDetectCSVDelimiter(t *testing.T) {
	cases := []struct {
		data string
		want rune
	}{
		{"a,b,c\n1,2,3\n", ','},
		{"a;b;c\n1;2;3\n", ';'},
		{"a\tb\tc\n1\t2\t3\n", '\t'},
		{"a|b|c\n1|2|3\n", '|'},
	}
	for _, tc := range cases {
		if got := DetectCSVDelimiter([]byte(tc.data)); got != tc.want {
			t.Errorf("DetectCSVDelimiter(%q) = %q, want %q", tc.data, got, tc.want)
		}
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Program Name", "Width", "Depth", "Height", "Target Z"})
	if !hasHeader {
		t.Fatal("aliases not recognized as header")
	}
	if mapping.Name != 0 || mapping.XSize != 1 || mapping.YSize != 2 || mapping.ZSize != 3 || mapping.FinishedZ != 4 {
		t.Errorf("alias mapping wrong: %+v", mapping)
	}
}
