package termmd

import (
	"regexp"
	"strings"
	"testing"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainRender(md string) string {
	return ansi.ReplaceAllString(Render(md), "")
}

func TestPlainText(t *testing.T) {
	if got := plainRender("Hello world"); got != "Hello world" {
		t.Errorf("Render() = %q, want %q", got, "Hello world")
	}
}

func TestEmphasisMarkersRemoved(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello **world**", "Hello world"},
		{"Hello *world*", "Hello world"},
		{"Hello ~~world~~", "Hello world"},
		{"Use `fmt.Println`", "Use fmt.Println"},
		{"# Title", "Title"},
	}
	for _, tt := range tests {
		if got := plainRender(tt.in); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLists(t *testing.T) {
	got := plainRender("- um\n- dois\n\n1. a\n2. b")
	for _, want := range []string{"• um", "• dois", "1. a", "2. b"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
}

func TestNestedList(t *testing.T) {
	got := plainRender("- outer\n  - inner\n- next")
	if !strings.Contains(got, "• outer\n  • inner\n• next") {
		t.Errorf("Render() = %q, want nested bullets", got)
	}
}

func TestFencedCode(t *testing.T) {
	got := plainRender("```go\nfmt.Println(\"oi\")\n```")
	if got != "  fmt.Println(\"oi\")" {
		t.Errorf("Render() = %q", got)
	}
}

func TestLinks(t *testing.T) {
	got := plainRender("[site](https://www.jovemprogramador.com.br)")
	if got != "site (https://www.jovemprogramador.com.br)" {
		t.Errorf("Render() = %q", got)
	}
	got = plainRender("<https://example.com>")
	if got != "https://example.com" {
		t.Errorf("Render(autolink) = %q", got)
	}
}

func TestTaskList(t *testing.T) {
	got := plainRender("- [x] done\n- [ ] todo")
	if !strings.Contains(got, "[x] done") || !strings.Contains(got, "[ ] todo") {
		t.Errorf("Render() = %q", got)
	}
}

func TestTable(t *testing.T) {
	got := plainRender("| Curso | Idade |\n|---|---|\n| Jovem Programador | 16+ |")
	for _, want := range []string{"1.", "• Curso: Jovem Programador", "• Idade: 16+"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
}

func TestBlockquote(t *testing.T) {
	got := plainRender("> citação")
	if got != "│ citação" {
		t.Errorf("Render() = %q", got)
	}
}
