package reporters

import "context"

// Reporter forwards settlement events to a downstream sink (SQS, HTTP, etc).
type Reporter interface {
	ID() string
	Type() string
	Report(ctx context.Context, evt Event) error
}
