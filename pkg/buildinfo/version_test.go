package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := Template(); !strings.Contains(got, "version v1.2.3") || !strings.HasPrefix(got, "{{.Name}}") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "netscore/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := String(); !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("String() = %q", got)
	}
}
