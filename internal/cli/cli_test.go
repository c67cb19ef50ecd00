package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imgajeed76/homeview/internal/util"
)

const homeValuesCSV = `StateName,RegionName,HomeValue
CA,Los Angeles,812000
CA,San Diego,901000
TX,Austin,455000
`

// run executes homeview with args against an isolated config file.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv("HOMEVIEW_DSN", "")
	t.Setenv("HOMEVIEW_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "home_values.csv")
	if err := os.WriteFile(path, []byte(homeValuesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExplore_Report(t *testing.T) {
	out, err := run(t, "explore", "--csv", writeCSV(t), "--report", "shape", "--no-tui")
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if want := "df.shape\n→ 3 rows × 3 columns\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestExplore_DefaultIsHead(t *testing.T) {
	out, err := run(t, "explore", "--csv", writeCSV(t), "--no-tui")
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if !strings.HasPrefix(out, "df.head()") || !strings.Contains(out, "Austin") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestExplore_InvalidReportSuggests(t *testing.T) {
	_, err := run(t, "explore", "--csv", writeCSV(t), "--report", "descrbe", "--no-tui")
	var hvErr *util.HomeviewError
	if !errors.As(err, &hvErr) {
		t.Fatalf("err = %v, want a HomeviewError", err)
	}
	if !errors.Is(err, util.ErrInvalidChoice) {
		t.Fatalf("err = %v, want ErrInvalidChoice", err)
	}
	if !strings.Contains(hvErr.Format(), `"describe"`) {
		t.Fatalf("no suggestion in:\n%s", hvErr.Format())
	}
}

func TestFilter_State(t *testing.T) {
	out, err := run(t, "filter", "--csv", writeCSV(t), "--state", "CA", "--no-tui")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !strings.HasPrefix(out, "Showing 2 of 3 rows") {
		t.Fatalf("output:\n%s", out)
	}
	if strings.Contains(out, "Austin") {
		t.Fatalf("TX row should be filtered out:\n%s", out)
	}
}

func TestFilter_MinClamps(t *testing.T) {
	out, err := run(t, "filter", "--csv", writeCSV(t), "--min", "900000", "--no-tui")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !strings.HasPrefix(out, "Showing 1 of 3 rows") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestFilter_HelpNamesValueCandidates(t *testing.T) {
	out, err := run(t, "filter", "--help")
	if err != nil {
		t.Fatalf("filter --help: %v", err)
	}
	if !strings.Contains(out, "the value column is HomeValue\nor else the first numeric column") || strings.Contains(out, "Price") {
		t.Fatalf("help:\n%s", out)
	}
}

func TestFilter_FirstNumericValueColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	csv := "StateName,Price\nCA,812000\nTX,455000\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "filter", "--csv", path, "--max", "500000", "--no-tui")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !strings.HasPrefix(out, "Showing 1 of 2 rows") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestFilter_UnknownState(t *testing.T) {
	_, err := run(t, "filter", "--csv", writeCSV(t), "--state", "Oregon", "--no-tui")
	if !errors.Is(err, util.ErrInvalidChoice) {
		t.Fatalf("err = %v", err)
	}
}

func TestPivot(t *testing.T) {
	out, err := run(t, "pivot", "--csv", writeCSV(t),
		"--index", "StateName", "--values", "HomeValue", "--agg", "max", "--no-tui")
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	for _, want := range []string{"StateName", "901000", "455000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPivot_Prompt(t *testing.T) {
	out, err := run(t, "pivot", "--csv", writeCSV(t), "--no-tui")
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if out != "Choose at least index and values.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTrends_UnknownBackend(t *testing.T) {
	_, err := run(t, "trends", "--csv", writeCSV(t), "--plot", "matplotlib", "--no-tui")
	if !errors.Is(err, util.ErrInvalidChoice) {
		t.Fatalf("err = %v", err)
	}
}

func TestHTMLOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.html")
	if _, err := run(t, "filter", "--csv", writeCSV(t), "--state", "TX", "--html", path); err != nil {
		t.Fatalf("filter: %v", err)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), "<p><b>Showing 1 of 3 rows</b></p>") {
		t.Fatalf("document:\n%s", doc)
	}
}

func TestNoSource(t *testing.T) {
	_, err := run(t, "explore", "--no-tui")
	if !errors.Is(err, util.ErrNoSource) {
		t.Fatalf("err = %v", err)
	}
}

func TestQueryRequired(t *testing.T) {
	_, err := run(t, "explore", "--sqlite", "homes.db", "--no-tui")
	var hvErr *util.HomeviewError
	if !errors.As(err, &hvErr) || !strings.Contains(hvErr.Title, "query") {
		t.Fatalf("err = %v", err)
	}
}

func TestShow_JSON(t *testing.T) {
	out, err := run(t, "show", "--csv", writeCSV(t), "--json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, `"RegionName": "San Diego"`) {
		t.Fatalf("output:\n%s", out)
	}
}

func TestShow_Plain(t *testing.T) {
	out, err := run(t, "show", "--csv", writeCSV(t))
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasSuffix(out, "(3 rows)\n") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestConfig_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := run(t, "--config", path, "config", "display.head_rows", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, err := run(t, "--config", path, "config", "display.head_rows")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != "2\n" {
		t.Fatalf("got %q, want 2", out)
	}

	out, err = run(t, "--config", path, "explore", "--csv", writeCSV(t), "--no-tui")
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if strings.Contains(out, "Austin") {
		t.Fatalf("head_rows=2 should stop before the third row:\n%s", out)
	}
}
