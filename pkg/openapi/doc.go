// Package openapi exposes the public contracts for the loader and parser
// stages that turn an OpenAPI document into operations. Implementations live
// under internal/openapi so kin-openapi types never leak to consumers.
package openapi
