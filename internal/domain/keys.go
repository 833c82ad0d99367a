package domain

// CtxKey namespaces values stored in a request context.
type CtxKey string

// KeyRequestID holds the X-Request-ID of the current request.
const KeyRequestID CtxKey = "RequestID"
