// Package api implements the HTTP handlers, request/response models and
// error translation for the service's REST endpoints.
package api
