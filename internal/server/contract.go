package server

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var contractYAML []byte

// Contract returns the embedded API description.
func Contract() []byte {
	return append([]byte(nil), contractYAML...)
}

// loadContract parses and validates the embedded API description.
func loadContract(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("server: load contract: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("server: validate contract: %w", err)
	}
	return spec, nil
}
