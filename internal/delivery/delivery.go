// Package delivery holds the inbound transports of the service.
package delivery

import "context"

// Delivery is a transport that serves until its context ends or it is stopped.
type Delivery interface {
	Serve(ctx context.Context) error
}
