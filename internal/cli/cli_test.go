package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flexgrid/pkg/grid"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"grid", "render", "screens", "preview", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"cache", "redis-addr", "mongo-uri"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestGridCommandJSON(t *testing.T) {
	out, err := execute(t, "grid", "-n", "8", "--columns", "2",
		"--hgap", "20", "--vgap", "20", "--padding", "10", "--item-height", "160", "-o", "json")
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	var res grid.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.Columns != 2 || res.Rows != 4 {
		t.Errorf("got %d×%d, want 2×4", res.Columns, res.Rows)
	}
	if res.ItemWidth != 175 || res.Height != 720 {
		t.Errorf("ItemWidth = %v, Height = %v, want 175, 720", res.ItemWidth, res.Height)
	}
}

func TestGridCommandTable(t *testing.T) {
	out, err := execute(t, "grid", "-n", "3", "--width", "1000", "--min-width", "300", "--cache", "none")
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if !strings.Contains(out, "3 columns × 1 rows") {
		t.Errorf("summary missing:\n%s", out)
	}
	if !strings.Contains(out, "Row") || !strings.Contains(out, "fresh") {
		t.Errorf("table or cache status missing:\n%s", out)
	}
}

func TestGridCommandErrors(t *testing.T) {
	tests := [][]string{
		{"grid", "-n", "2"}, // neither columns nor min width
		{"grid", "-n", "2", "--columns", "2", "--min-width", "9"}, // both
		{"grid", "-n", "2", "--columns", "2", "-o", "yaml"},
		{"grid", "-n", "1", "--width", "20", "--columns", "4", "--padding", "10"},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRenderCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out", "cards")

	if _, err := execute(t, "render", "cards", "-f", "svg,txt,dot", "-o", base+".svg"); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{".svg", ".txt", ".dot"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("missing %s: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
	}
}

func TestRenderCommandFromFile(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "mini.toml")
	src := `name = "mini"

[[sections]]
name = "tiles"
kind = "grid"
min_item_width = 100
item_height = 50

[[sections.items]]
label = "A"

[[sections.items]]
label = "B"
`
	if err := os.WriteFile(def, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(dir, "mini")

	if _, err := execute(t, "render", "--file", def, "-f", "json", "--width", "250", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"mini/tiles"`) {
		t.Errorf("json output missing section id:\n%s", data)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no screen", []string{"render"}},
		{"unknown screen", []string{"render", "nope"}},
		{"bad format", []string{"render", "cards", "-f", "pdf"}},
		{"stdout with two formats", []string{"render", "cards", "-f", "svg,txt", "-o", "-"}},
		{"name and file", []string{"render", "cards", "--file", "x.toml"}},
		{"missing file", []string{"render", "--file", "does-not-exist.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScreensCommand(t *testing.T) {
	out, err := execute(t, "screens")
	if err != nil {
		t.Fatalf("screens: %v", err)
	}
	for _, name := range []string{"cards", "feed", "profile"} {
		if !strings.Contains(out, name) {
			t.Errorf("screens output missing %q:\n%s", name, out)
		}
	}
}

func TestScreensShowCommand(t *testing.T) {
	out, err := execute(t, "screens", "show", "feed")
	if err != nil {
		t.Fatalf("screens show: %v", err)
	}
	if !strings.Contains(out, `name = "feed"`) || !strings.Contains(out, "[[sections]]") {
		t.Errorf("unexpected TOML:\n%s", out)
	}
}

func TestStripFormatExt(t *testing.T) {
	tests := map[string]string{
		"out":             "out",
		"out.svg":         "out",
		"out.tree.svg":    "out",
		"out.tree.png":    "out",
		"dir/screen.json": "dir/screen",
		"report.pdf":      "report.pdf",
	}
	for in, want := range tests {
		if got := stripFormatExt(in); got != want {
			t.Errorf("stripFormatExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := formatExt(pipeline.FormatTreePNG); got != ".tree.png" {
		t.Errorf("formatExt(png) = %q", got)
	}
	if got := formatExt(pipeline.FormatText); got != ".txt" {
		t.Errorf("formatExt(txt) = %q", got)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != pipeline.FormatSVG {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	got := parseFormats("svg, txt")
	if len(got) != 2 || got[1] != "txt" {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestStatsLine(t *testing.T) {
	if got := statsLine(8, 12, true); got != "  8 items · 12 nodes · cached" {
		t.Errorf("statsLine = %q", got)
	}
	if got := statsLine(0, 0, false); got != "  fresh" {
		t.Errorf("statsLine = %q", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__flexgrid"},
		{"zsh", "#compdef flexgrid"},
		{"fish", "complete -c flexgrid"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := execute(t, "completion", tt.shell)
			if err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("completion %s output lacks %q", tt.shell, tt.want)
			}
		})
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
