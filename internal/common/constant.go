package common

// AuthorizationHeader is the HTTP header used to carry the bearer token
// on outbound requests to the record API.
const AuthorizationHeader = "Authorization"

// BearerPrefix is prepended to the session token in the authorization header.
const BearerPrefix = "Bearer "
