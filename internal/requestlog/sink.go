package requestlog

import "context"

// Sink receives every recorded entry off the request path.
type Sink interface {
	Name() string
	Write(ctx context.Context, entry Entry) error
	Close() error
}

// Loader is a sink that can replay its most recent entries on startup.
type Loader interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Clearer is a sink that can drop everything it holds.
type Clearer interface {
	Clear(ctx context.Context) error
}
