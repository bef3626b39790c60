package shared

import (
	"errors"
	"os/exec"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	stub := func(t *testing.T, goos string) *[]string {
		t.Helper()
		var args []string
		origRuntime, origStart := getRuntime, startCommand
		getRuntime = func() string { return goos }
		startCommand = func(cmd *exec.Cmd) error {
			args = cmd.Args
			return nil
		}
		t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })
		return &args
	}

	t.Run("opens web links per platform", func(t *testing.T) {
		tc := []struct {
			goos string
			want string
		}{
			{goos: "darwin", want: "open"},
			{goos: "linux", want: "xdg-open"},
			{goos: "windows", want: "rundll32"},
		}
		for _, tt := range tc {
			t.Run(tt.goos, func(t *testing.T) {
				args := stub(t, tt.goos)
				if err := OpenBrowser("https://media.example.com/lakers.png"); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(*args) == 0 || (*args)[0] != tt.want {
					t.Errorf("expected %s, got %v", tt.want, *args)
				}
				if last := (*args)[len(*args)-1]; last != "https://media.example.com/lakers.png" {
					t.Errorf("expected link as last argument, got %q", last)
				}
			})
		}
	})

	t.Run("rejects non-web links", func(t *testing.T) {
		args := stub(t, "linux")
		for _, link := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
			if err := OpenBrowser(link); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("OpenBrowser(%q): expected ErrInvalidArgument, got %v", link, err)
			}
		}
		if len(*args) != 0 {
			t.Errorf("expected no command to start, got %v", *args)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		stub(t, "plan9")
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
