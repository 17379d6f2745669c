package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed api.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger parses and validates the embedded OpenAPI document. The result is
// cached after the first call.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()

		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading openapi document: %w", err)
			return
		}

		err = doc.Validate(loader.Context)
		if err != nil {
			swaggerErr = fmt.Errorf("invalid openapi document: %w", err)
			return
		}

		swagger = doc
	})

	return swagger, swaggerErr
}

// RawSpec returns the embedded document as written.
func RawSpec() []byte {
	return rawSpec
}
