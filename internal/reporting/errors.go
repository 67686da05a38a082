package reporting

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/astpanel/isosel/internal/models"
)

// WriteErrorLog writes one "<subject>: <message>" line per record.
func WriteErrorLog(w io.Writer, log models.ErrorLog) error {
	bw := bufio.NewWriter(w)
	for _, rec := range log {
		if _, err := fmt.Fprintln(bw, rec.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteErrorLogFile writes the error log to path. An empty log still creates
// the file so a rerun never leaves a stale one behind.
func WriteErrorLogFile(path string, log models.ErrorLog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating error log: %w", err)
	}
	if err := WriteErrorLog(f, log); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("writing error log %s: %w", path, err)
	}
	return f.Close()
}
