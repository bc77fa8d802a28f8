// Package api adapts HTTP requests to the user and task services. It owns
// request decoding, the session cookie, and the mapping from service errors
// to status codes and client-safe messages.
package api
