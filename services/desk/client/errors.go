// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Error taxonomy for the desk client.
//
// Every failure from this package is an *APIError. The taxonomy separates
// "network unreachable" from "4xx client error" from "5xx server error" so
// callers can choose programmatic handling: retry-worthy transport failures,
// user-correctable validation failures, and degraded-mode server failures are
// all distinguishable. The store never substitutes fabricated data for any
// of them; it records the error on the affected slice.
package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a client failure.
type ErrorKind int

const (
	// KindTransport covers DNS, dial, TLS, and timeout failures where no
	// HTTP response was received.
	KindTransport ErrorKind = iota

	// KindValidation covers 4xx responses other than 404: the request was
	// understood and rejected (bad body, missing fields, empty content).
	KindValidation

	// KindNotFound covers 404 responses for a named resource.
	KindNotFound

	// KindServer covers 5xx responses and envelopes with success=false.
	KindServer

	// KindDecode covers responses that arrived but could not be parsed as
	// the expected envelope.
	KindDecode
)

// String returns the metric-label form of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the error type returned by all Client methods.
//
// StatusCode is zero for transport and decode failures. Detail carries the
// server's "detail" string when one was provided.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Endpoint   string
	Detail     string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return fmt.Sprintf("desk %s: %s (%s): %v", e.Endpoint, e.Kind, e.Detail, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("desk %s: %s: %v", e.Endpoint, e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("desk %s: %s (HTTP %d): %s", e.Endpoint, e.Kind, e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("desk %s: %s (HTTP %d)", e.Endpoint, e.Kind, e.StatusCode)
	}
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status code onto the taxonomy.
func classifyStatus(code int) ErrorKind {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// IsNotFound reports whether err is an *APIError with KindNotFound.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsTransport reports whether err is an *APIError with KindTransport.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

// IsValidation reports whether err is an *APIError with KindValidation.
func IsValidation(err error) bool { return hasKind(err, KindValidation) }

// IsServer reports whether err is an *APIError with KindServer.
func IsServer(err error) bool { return hasKind(err, KindServer) }

func hasKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
