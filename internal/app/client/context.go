package client

import "context"

type ctxKey struct{}

// WithApp кладёт App в контекст команды.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	return app, ok && app != nil
}
