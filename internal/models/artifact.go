package models

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
)

// ArtifactDelimiter separates fields in the intermediate file loaded into the store
const ArtifactDelimiter = '\t'

// WriteArtifact encodes records as tab-delimited rows under a Columns header
func WriteArtifact(w io.Writer, records []CrimeRecord) error {
	bw := bufio.NewWriter(w)
	writer := csv.NewWriter(bw)
	writer.Comma = ArtifactDelimiter

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range records {
		if err := writer.Write(records[i].Row()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", records[i].ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush artifact: %w", err)
	}
	return bw.Flush()
}

// NewArtifactReader returns a csv.Reader configured for the artifact format.
// The caller reads the header row first.
func NewArtifactReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.Comma = ArtifactDelimiter
	reader.FieldsPerRecord = len(Columns)
	reader.LazyQuotes = true
	reader.ReuseRecord = true
	return reader
}
