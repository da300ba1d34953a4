package cmd

import (
	"fmt"
	"os"
	"sync"
)

// messages collects warnings and errors during a run so they can be
// repeated in one block at the end, after the report scrolled by.
// Safe for concurrent use; refresh collects from several fetches at once.
type messageLog struct {
	mu       sync.Mutex
	errors   []string
	warnings []string
}

func (m *messageLog) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	m.mu.Lock()
	m.errors = append(m.errors, msg)
	m.mu.Unlock()
	fmt.Fprintln(os.Stderr, "Fehler:", msg)
}

func (m *messageLog) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	m.mu.Lock()
	m.warnings = append(m.warnings, msg)
	m.mu.Unlock()
	fmt.Fprintln(os.Stderr, "Warnung:", msg)
}

func (m *messageLog) HasErrors() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors) > 0
}

// Report prints the collected messages grouped by severity.
func (m *messageLog) Report() {
	report := func(title string, list []string) {
		if len(list) == 0 {
			return
		}
		fmt.Fprintf(os.Stderr, "\n%s\n", title)
		for _, msg := range list {
			fmt.Fprintln(os.Stderr, " -", msg)
		}
	}
	report("Fehler:", m.errors)
	report("Warnungen:", m.warnings)
}
