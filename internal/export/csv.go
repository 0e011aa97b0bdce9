// Package export encodes engine snapshots into the CSV output format.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"ledger-engine/internal/domain/engine"
)

var header = []string{"client", "available", "held", "total", "locked"}

// Writer writes the account summary. Row order follows the order
// snapshots are given in.
type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAll writes the header followed by one row per snapshot, then
// flushes.
func (w *Writer) WriteAll(snapshots []engine.Snapshot) error {
	if err := w.csv.Write(header); err != nil {
		return err
	}
	for _, s := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Frozen),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}
