// Package service implements the application's business operations,
// orchestrating stores and the token service beneath the API layer.
package service
