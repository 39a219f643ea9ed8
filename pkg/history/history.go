package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxLines is how many answers are kept on disk.
const MaxLines = 500

// History is the list of previous prompt answers, oldest first.
type History struct {
	path  string
	lines []string
}

// Load reads the history file. A missing file yields an empty history.
func Load(path string) (*History, error) {
	h := &History{path: path}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			h.lines = append(h.lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return h, nil
}

// Append records an answer. Blank answers and immediate repeats are skipped.
func (h *History) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.ContainsAny(line, "\r\n") {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
}

// Lines returns the history, oldest first.
func (h *History) Lines() []string {
	return append([]string(nil), h.lines...)
}

// Last returns the most recent answer that is one of options. With no
// options, the most recent answer of any kind.
func (h *History) Last(options []string) (string, bool) {
	allowed := make(map[string]bool, len(options))
	for _, o := range options {
		allowed[o] = true
	}
	for i := len(h.lines) - 1; i >= 0; i-- {
		if len(options) == 0 || allowed[h.lines[i]] {
			return h.lines[i], true
		}
	}
	return "", false
}

// Save writes the newest MaxLines answers back to the history file.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	lines := h.lines
	if len(lines) > MaxLines {
		lines = lines[len(lines)-MaxLines:]
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(h.path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
