package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleReport = `# Task Distribution Report

## Week 1

| Team | Lead | Assigned Tasks |
|------|------|----------------|
| 1 | Ada | 5/6 |
| 2 | Grace | 7/6 ⚠ |
`

func TestRender(t *testing.T) {
	g := NewPageGenerator("tasks.jsonl")

	out, err := g.Render([]byte(sampleReport))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(out)

	checks := []string{
		"<title>Task Distribution Report — tasks.jsonl</title>",
		"<table>",
		`<h2 id="week-1">Week 1</h2>`,
		"<td>5/6</td>",
		`<td class="over">7/6 ⚠</td>`,
	}
	for _, want := range checks {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	g := NewPageGenerator("tasks.jsonl")

	md := "# Report\n\n| Repository | Tasks |\n|---|---|\n| <img src=x onerror=alert(1)> | 1 |\n\n<script>alert(2)</script>\n"
	out, err := g.Render([]byte(md))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := string(out)

	for _, raw := range []string{"<img", "<script>"} {
		if strings.Contains(page, raw) {
			t.Errorf("rendered page contains raw %q", raw)
		}
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "distribution_report.md")
	if err := os.WriteFile(src, []byte(sampleReport), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := HTMLPath(src)
	if filepath.Base(dst) != "distribution_report.html" {
		t.Fatalf("HTMLPath = %s", dst)
	}

	if err := NewPageGenerator("p").RenderFile(src, dst); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Error("output is not an HTML document")
	}
}

func TestRenderFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := NewPageGenerator("p").RenderFile(filepath.Join(dir, "missing.md"), filepath.Join(dir, "out.html"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestExtractTitle(t *testing.T) {
	if got := extractTitle("intro\n# Heading\n", "x"); got != "Heading" {
		t.Errorf("extractTitle = %q", got)
	}
	if got := extractTitle("no heading", "fallback"); got != "fallback" {
		t.Errorf("extractTitle fallback = %q", got)
	}
}
