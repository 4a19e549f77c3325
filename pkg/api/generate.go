// Package api holds the HTTP types and router generated from api/openapi.yaml.
package api

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.5.0 --config=oapi-codegen.yaml ../../api/openapi.yaml
