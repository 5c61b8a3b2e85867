package buildinfo

import (
	"strings"
	"testing"
)

func TestStringUsesOverrides(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v0.3.0", "abc1234", "2026-01-02T03:04:05Z"

	want := "v0.3.0 (abc1234, 2026-01-02T03:04:05Z)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Template(); got != "{{.Name}} "+want+"\n" {
		t.Errorf("Template() = %q", got)
	}
}

func TestStringFallbacks(t *testing.T) {
	defer func(c, d string) { Commit, Date = c, d }(Commit, Date)
	Commit, Date = "", ""

	got := String()
	if !strings.HasPrefix(got, Version+" (") {
		t.Errorf("String() = %q, want prefix %q", got, Version+" (")
	}
	if strings.Contains(got, "()") || strings.Contains(got, ", )") {
		t.Errorf("String() = %q has empty fields", got)
	}
}
