package common

// AccessTokenHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AccessTokenHeaderName = "X-Auth-Token"

// RequestIDHeaderName is echoed on every response so log lines can be matched
// to a client request.
const RequestIDHeaderName = "X-Request-ID"
