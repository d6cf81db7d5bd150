package ctxutil

import "context"

type requestDataKey struct{}

// RequestData is the per-request state the middleware attaches. AccessToken is
// the caller's Google OAuth bearer token; this service never mints or refreshes
// credentials, it only passes them through to the Classroom and Drive clients.
type RequestData struct {
	RequestID   string
	AccessToken string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(requestDataKey{}).(*RequestData)
	return rd
}
