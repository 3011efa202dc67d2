// Package http contains the HTTP transport layer: chi handlers that
// translate between the JSON API and the analytics service, with
// RFC 7807 problem responses for errors.
package http
