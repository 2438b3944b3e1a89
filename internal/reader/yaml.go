package reader

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/shiva/transit-catalogue/internal/model"
)

var validate = validator.New()

// DecodeYAML decodes a batch document of the form
//
//	stops:
//	  - name: Tolstopaltsevo
//	    latitude: 55.611087
//	    longitude: 37.20829
//	    road_distances:
//	      - {to: Marushkino, meters: 3900}
//	buses:
//	  - {number: "750", stops: [Tolstopaltsevo, Marushkino], is_roundtrip: false}
//
// and validates it. Unknown fields are rejected.
func DecodeYAML(r io.Reader) (*model.Batch, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var batch model.Batch
	if err := dec.Decode(&batch); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml batch: %w", err)
	}
	if err := ValidateBatch(&batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ValidateBatch checks field-level constraints of a batch: names present,
// coordinates in range, non-negative distances, non-empty routes.
// Cross-references (unknown stops, duplicates) are left to the catalogue.
func ValidateBatch(batch *model.Batch) error {
	if err := validate.Struct(batch); err != nil {
		return fmt.Errorf("validate batch: %w", err)
	}
	return nil
}

// ValidateRequest checks a single request.
func ValidateRequest(req Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	return nil
}
