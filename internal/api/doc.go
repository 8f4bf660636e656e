// Package api handles incoming HTTP requests: it decodes and validates request
// bodies, calls the auth and task services and writes JSON responses.
//
// Errors from lower layers are turned into responses by HandleAPIError, which
// picks the status code and a safe message from the error's type and logs the
// redacted original. Subpackage middleware holds the trace and bearer-token
// middleware; subpackage shared holds context keys and response helpers used
// by both.
package api
