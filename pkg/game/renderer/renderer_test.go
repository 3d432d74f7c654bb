package renderer

import (
	"testing"

	"github.com/leonelquinteros/gotext"
)

func TestStripMarkup_TranslatesKeys(t *testing.T) {
	gotext.Configure("../../../locales", "en_GB", "default")
	InitColors()

	tests := []struct {
		in   string
		want string
	}{
		{"GT{MESSAGES}", "Messages"},
		{"DENIED{DROP_BLOCKED} CELL{(1,2)}", "Blocked (1,2)"},
		{"VALID{DROP_PLACED} ACTION{crate}", "Placed crate"},
		{"no markup", "no markup"},
	}
	for _, tt := range tests {
		if got := StripMarkup(tt.in); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
