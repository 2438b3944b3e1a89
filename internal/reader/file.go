package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/shiva/transit-catalogue/internal/model"
)

// Batch document formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// DecodeBatch reads a batch-only document in the given format.
func DecodeBatch(r io.Reader, format string) (*model.Batch, error) {
	switch format {
	case FormatText, "":
		batch, err := ReadBatch(r)
		if err != nil {
			return nil, err
		}
		if err := ValidateBatch(batch); err != nil {
			return nil, err
		}
		return batch, nil
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, fmt.Errorf("unknown batch format %q", format)
	}
}

// ReadBatchFile opens path and decodes it with DecodeBatch.
func ReadBatchFile(path, format string) (*model.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}
	defer f.Close()

	batch, err := DecodeBatch(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return batch, nil
}
