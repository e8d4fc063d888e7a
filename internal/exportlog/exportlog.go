// Package exportlog keeps a CSV history of written reports.
package exportlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// FileName is the log file written next to the reports.
const FileName = "export-log.csv"

// Header is the first line of export-log.csv.
const Header = "timestamp,report,file,rows,due_date"

const dueLayout = "2006-01-02"

// ErrHeader is returned by Read when the log does not start with Header.
var ErrHeader = errors.New("export log: unexpected header")

var columns = strings.Split(Header, ",")

// Entry is one row in the export log.
type Entry struct {
	Timestamp time.Time
	Report    string
	File      string // base name of the written report
	Rows      int
	DueDate   time.Time
}

// MarshalEntry converts an Entry to a CSV row in Header order.
func MarshalEntry(e Entry) []string {
	return []string{
		e.Timestamp.Format(time.RFC3339),
		e.Report,
		e.File,
		strconv.Itoa(e.Rows),
		e.DueDate.Format(dueLayout),
	}
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != len(columns) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(record))
	}
	var (
		e   = Entry{Report: record[1], File: record[2]}
		err error
	)
	if e.Timestamp, err = time.Parse(time.RFC3339, record[0]); err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[0], err)
	}
	if e.Rows, err = strconv.Atoi(record[3]); err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[3], err)
	}
	if e.DueDate, err = time.Parse(dueLayout, record[4]); err != nil {
		return Entry{}, fmt.Errorf("parsing due date %q: %w", record[4], err)
	}
	return e, nil
}

// Path returns the log location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Append adds entries to the log in dir. The directory and file are
// created on first use; the header is written whenever the file is empty.
func Append(dir string, entries []Entry) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.OpenFile(Path(dir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening export log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export log: %w", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat export log: %w", err)
	}
	return write(f, info.Size() == 0, entries)
}

func write(w io.Writer, header bool, entries []Entry) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns the entries logged in dir, oldest first. A missing log
// yields no entries.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening export log: %w", err)
	}
	defer f.Close()

	return read(f)
}

func read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading export log: %w", err)
	}
	if !slices.Equal(head, columns) {
		return nil, fmt.Errorf("%w: %q", ErrHeader, strings.Join(head, ","))
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading export log: %w", err)
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}
