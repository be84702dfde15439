// Package clipboard copies plain text to the system clipboard.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// CopyText copies text to the system clipboard using the platform's tooling.
func CopyText(text string) error {
	switch runtime.GOOS {
	case "linux":
		return copyTextLinux(text)
	case "darwin":
		return pipe(text, "pbcopy")
	case "windows":
		return pipe(text, "powershell", "-NoProfile", "-Command", "$input | Set-Clipboard")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func copyTextLinux(text string) error {
	tools := [][]string{
		{"wl-copy"},                          // Wayland
		{"xclip", "-selection", "clipboard"}, // X11
		{"xsel", "--clipboard", "--input"},   // X11 alternative
	}

	for _, tool := range tools {
		if !isCommandAvailable(tool[0]) {
			continue
		}
		if err := pipe(text, tool[0], tool[1:]...); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no suitable clipboard tool found (tried: wl-copy, xclip, xsel)")
}

func pipe(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
