package pagegen

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.2.3", CommitHash: "abcdef0123", BuildDate: "2024-01-02"}

	want := "pagegen v1.2.3-ABCDEF0 " + runtime.GOOS + "/" + runtime.GOARCH + " BuildDate=2024-01-02"
	if got := info.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := (Info{Version: "dev"}).String(); !strings.HasPrefix(got, "pagegen dev ") || strings.Contains(got, "BuildDate") {
		t.Errorf("got %q", got)
	}
}

func TestNewInfo(t *testing.T) {
	info := NewInfo()
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("unexpected info: %+v", info)
	}
}
