/**
 * @description
 * This file defines the error taxonomy for the relay pipeline. Normalization
 * and forwarding return errors wrapping one of these sentinels; the HTTP
 * layer is the single place where they are translated into status codes.
 */
package domain

import "errors"

var (
	// ErrInvalidPayload marks a request body that is not valid UTF-8 or
	// cannot be parsed as JSON even after quote repair.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrMissingRequiredField marks a new-card payload with one or more of
	// the required fields absent or empty.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMissingIdentifier marks a status update with no resolvable card
	// identifier (neither cardId nor applicationId where allowed).
	ErrMissingIdentifier = errors.New("missing card identifier")

	// ErrUpstreamTimeout marks a forwarding call that exceeded the
	// configured timeout.
	ErrUpstreamTimeout = errors.New("cards service timed out")

	// ErrUpstreamUnavailable marks a forwarding call that could not reach
	// the cards service at all.
	ErrUpstreamUnavailable = errors.New("cards service unavailable")

	// ErrForward marks any other transport failure while forwarding.
	ErrForward = errors.New("forwarding failed")
)
