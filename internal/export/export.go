// Package export serializes the lap table as CSV and delivers it to a file
// or the system clipboard.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"chrono/internal/ledger"
)

const (
	Filename    = "table.csv"
	ContentType = "text/csv;charset=utf-8"
	Header      = "sequenceNumber,formattedTime,note"
)

// CSV renders rows one per line under Header. The time column is always
// quoted so spreadsheets keep it as text; the other columns are written as
// is. Lines are separated by \n with no trailing newline.
func CSV(rows []ledger.Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Header)
	for _, r := range rows {
		lines = append(lines, strconv.Itoa(r.Seq)+`,"`+r.Time+`",`+r.Note)
	}
	return strings.Join(lines, "\n")
}

// WriteFile writes the CSV for rows to dir/name and returns the path and the
// number of bytes written.
func WriteFile(dir, name string, rows []ledger.Row) (string, int, error) {
	if name == "" {
		name = Filename
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(dir, name)
	data := []byte(CSV(rows))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, len(data), nil
}

// ToClipboard copies the CSV for rows to the system clipboard and returns
// the number of bytes copied.
func ToClipboard(rows []ledger.Row) (int, error) {
	text := CSV(rows)
	if err := clipboard.WriteAll(text); err != nil {
		return 0, fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return len(text), nil
}
