package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// openAPIDoc serves the embedded document to the swagger UI as JSON.
type openAPIDoc struct {
	json string
}

// ReadDoc implements swag.Swagger.
func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// registerDoc publishes doc under swag.Name, which echoSwagger.WrapHandler serves as
// /swagger/doc.json. swag panics on a second registration, so only the first call
// takes effect.
func registerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(data)})
	})
	return nil
}
