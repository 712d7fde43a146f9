package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/assort/internal/core"
)

// flushInterval is the number of rows written between flushes.
const flushInterval = 1000

// WriteCSV writes every product as CSV with a header row.
func WriteCSV(w io.Writer, cat *core.Catalog) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, p := range ordered(cat) {
		if err := cw.Write(record(p)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
		if (i+1)%flushInterval == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("flush csv: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
