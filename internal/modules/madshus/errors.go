package madshus

import "errors"

var (
	// ErrHTTPRequest marks a request that could not be built or sent.
	ErrHTTPRequest = errors.New("madshus: http request failed")

	// ErrHTTPResponse marks a non-2xx response from the API.
	ErrHTTPResponse = errors.New("madshus: unexpected http response")

	// ErrGraphQLResponse marks a response carrying GraphQL-level errors.
	ErrGraphQLResponse = errors.New("madshus: graphql errors in response")

	// ErrDecode marks a response body that could not be decoded.
	ErrDecode = errors.New("madshus: failed to decode response")

	// ErrMapping marks a product payload that cannot be mapped to a
	// catalog product.
	ErrMapping = errors.New("madshus: failed to map product payload")
)
