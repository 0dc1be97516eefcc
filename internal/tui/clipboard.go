package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"mineflow/internal/graph"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// copyNode puts a plain-text summary of n on the system clipboard.
func copyNode(n graph.Node) error {
	return clipboard.WriteAll(nodeSummary(n))
}

func nodeSummary(n graph.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", n.Label, n.Category)
	fmt.Fprintf(&b, "Inputs: %s\n", strings.Join(n.Inputs, ", "))
	fmt.Fprintf(&b, "Outputs: %s\n", strings.Join(n.Outputs, ", "))
	fmt.Fprintf(&b, "Impact: %.0f\n", n.ImpactScore)
	return b.String()
}

// cleanClipboardText drops control characters and normalises line endings.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

// firstLine returns the first non-blank line, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
