// Package holidays reads the holiday list published as CSV.
package holidays

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// CSVSource reads the first column of a CSV file, dropping the header row.
// The cabinet office list (syukujitsu.csv) is Shift-JIS encoded.
type CSVSource struct {
	Path     string
	Encoding string // "shift-jis" (default) or "utf-8"
}

func NewCSVSource(path, encoding string) *CSVSource {
	return &CSVSource{Path: path, Encoding: encoding}
}

// Entries returns the raw date text of every data row. Garbled rows are passed
// through for the calendar to reject; only an unreadable file is an error.
func (s *CSVSource) Entries(ctx context.Context) ([]string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read holidays csv: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.decoder(raw)
	if err != nil {
		return nil, err
	}
	return ParseEntries(r)
}

func (s *CSVSource) decoder(raw []byte) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(s.Encoding)) {
	case "", "shift-jis", "shift_jis", "sjis", "cp932":
		return transform.NewReader(bytes.NewReader(raw), japanese.ShiftJIS.NewDecoder()), nil
	case "utf-8", "utf8":
		return bytes.NewReader(raw), nil
	}
	return nil, fmt.Errorf("unsupported holidays encoding %q", s.Encoding)
}

// ParseEntries returns the first field of every line after the header.
// Lines are handled independently so a stray quote cannot swallow the rows after it.
func ParseEntries(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []string
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		first, _, _ := strings.Cut(sc.Text(), ",")
		first = strings.Trim(strings.TrimSpace(first), `"`)
		if first == "" {
			continue
		}
		entries = append(entries, first)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read holidays csv: %w", err)
	}
	return entries, nil
}
