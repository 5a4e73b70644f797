package style

import (
	"strings"
	"testing"
)

var helpers = []struct {
	name string
	fn   func(string) string
}{
	{"Success", Success},
	{"Warning", Warning},
	{"Error", Error},
	{"Info", Info},
	{"Header", Header},
	{"Muted", Muted},
}

func TestDisabledReturnsPlainText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("ECUPROBE_NO_COLOR", "")
	Init(false)

	for _, tt := range helpers {
		t.Run(tt.name, func(t *testing.T) {
			input := "test message"
			output := tt.fn(input)

			if output != input {
				t.Errorf("%s() with disabled styling: got %q, want %q", tt.name, output, input)
			}
		})
	}
}

func TestEnabledReturnsStyledText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("ECUPROBE_NO_COLOR", "")
	Init(true)
	defer Init(false)

	for _, tt := range helpers {
		t.Run(tt.name, func(t *testing.T) {
			input := "test message"
			output := tt.fn(input)

			if !strings.Contains(output, input) {
				t.Errorf("%s() output %q does not contain input %q", tt.name, output, input)
			}
			if !strings.Contains(output, "\x1b[") {
				t.Errorf("%s() with enabled styling should contain ANSI codes: %q", tt.name, output)
			}
		})
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	for _, env := range []string{"NO_COLOR", "ECUPROBE_NO_COLOR"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			t.Setenv("ECUPROBE_NO_COLOR", "")
			t.Setenv(env, "1")

			Init(true)
			defer Init(false)

			if Enabled() {
				t.Errorf("Enabled() should return false when %s is set", env)
			}
			if got := Success("test"); got != "test" {
				t.Errorf("Success() should return plain text, got %q", got)
			}
		})
	}
}

func TestEnabledReturnsCorrectState(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("ECUPROBE_NO_COLOR", "")

	Init(false)
	if Enabled() {
		t.Error("Enabled() should return false after Init(false)")
	}

	Init(true)
	if !Enabled() {
		t.Error("Enabled() should return true after Init(true)")
	}
	Init(false)
}
