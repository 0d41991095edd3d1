package health

import "context"

// Prober performs a cheap live check of one dependency.
type Prober interface {
	Ping(ctx context.Context) error
}
