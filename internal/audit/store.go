package audit

import "context"

// Store persists entries in append order.
type Store interface {
	Append(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, filter Filter) ([]Entry, error)
}
