// Package ingest decodes the CSV record-stream format into engine
// events. encoding/csv is used directly: no third-party CSV
// library appears anywhere in the example corpus (the one CSV-processing
// reference file in the pack, a Kraken ledger converter, also reaches
// for encoding/csv), so there is no ecosystem convention to follow here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ledger-engine/internal/domain/event"
	"ledger-engine/internal/domain/money"
	"ledger-engine/internal/pkg/apperrors"
)

var expectedHeader = []string{"type", "client", "tx", "amount"}

// Reader decodes one record stream. A fresh Reader is created per input
// file; the CLI driver chains readers across files so transactions
// carry across files as if concatenated, without holding more than one
// row in memory at a time.
type Reader struct {
	csv  *csv.Reader
	file string
	row  int
}

// NewReader wraps r, reading and validating the header line. filename
// is used only to annotate decode errors.
func NewReader(r io.Reader, filename string) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, apperrors.Decode(fmt.Sprintf("%s: missing or unreadable header: %v", filename, err))
	}
	if !headerMatches(header) {
		return nil, apperrors.Decode(fmt.Sprintf("%s: unexpected header %v, want %v", filename, header, expectedHeader))
	}

	return &Reader{csv: cr, file: filename, row: 1}, nil
}

func headerMatches(got []string) bool {
	if len(got) < len(expectedHeader) {
		return false
	}
	for i, want := range expectedHeader {
		if strings.ToLower(strings.TrimSpace(got[i])) != want {
			return false
		}
	}
	return true
}

// Next decodes the next row into an Event. It returns io.EOF when the
// stream is exhausted. A malformed row produces a Decode error carrying
// the file name and row number; the caller decides whether to skip or
// abort.
func (r *Reader) Next() (event.Event, error) {
	fields, err := r.csv.Read()
	if err == io.EOF {
		return event.Event{}, io.EOF
	}
	r.row++
	if err != nil {
		return event.Event{}, r.decodef("malformed row: %v", err)
	}
	return r.parseRow(fields)
}

func (r *Reader) parseRow(fields []string) (event.Event, error) {
	if len(fields) < 3 {
		return event.Event{}, r.decodef("expected at least 3 fields, got %d", len(fields))
	}

	kindField := strings.ToLower(strings.TrimSpace(fields[0]))
	kind, ok := parseKind(kindField)
	if !ok {
		return event.Event{}, r.decodef("unrecognized event type %q", fields[0])
	}

	clientID, err := parseUint(fields[1], 16)
	if err != nil {
		return event.Event{}, r.decodef("invalid client id %q: %v", fields[1], err)
	}

	txID, err := parseUint(fields[2], 32)
	if err != nil {
		return event.Event{}, r.decodef("invalid transaction id %q: %v", fields[2], err)
	}

	ev := event.Event{Kind: kind, ClientID: uint16(clientID), TxID: uint32(txID)}

	switch kind {
	case event.Deposit, event.Withdrawal:
		raw := ""
		if len(fields) > 3 {
			raw = strings.TrimSpace(fields[3])
		}
		if raw == "" {
			return event.Event{}, r.decodef("%s requires an amount", kindField)
		}
		amount, ok := money.Parse(raw)
		if !ok {
			return event.Event{}, r.decodef("invalid amount %q", raw)
		}
		ev.Amount = amount
	default:
		// Amounts on dispute/resolve/chargeback rows, if present, are
		// ignored.
	}

	return ev, nil
}

func parseKind(s string) (event.Kind, bool) {
	switch event.Kind(s) {
	case event.Deposit, event.Withdrawal, event.Dispute, event.Resolve, event.Chargeback:
		return event.Kind(s), true
	default:
		return "", false
	}
}

func parseUint(s string, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, bits)
}

func (r *Reader) decodef(format string, args ...interface{}) error {
	return apperrors.Decode(fmt.Sprintf("%s:%d: %s", r.file, r.row, fmt.Sprintf(format, args...)))
}
