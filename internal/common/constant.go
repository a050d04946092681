package common

// AuthorizationHeader carries the bearer access token on inbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the token inside AuthorizationHeader.
const BearerPrefix = "Bearer "
