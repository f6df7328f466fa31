// Package apidocs embeds the OpenAPI document of the gateway. The same bytes
// drive request validation and the swagger UI.
package apidocs

import (
	"context"
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var document []byte

var registerOnce sync.Once

// Document returns the raw OpenAPI document.
func Document() []byte {
	return document
}

// Load parses and validates the document.
func Load(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// Register publishes the document to swag under the default instance name,
// where echo-swagger reads it. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		spec := &swag.Spec{
			Version:          "1.0.0",
			Title:            "Trip Status Ledger",
			InfoInstanceName: "swagger",
			SwaggerTemplate:  string(document),
		}
		swag.Register(spec.InstanceName(), spec)
	})
}
