package protocol

import "context"

// Lifecycle is implemented by anything the application package can manage as
// a component: started in order, stopped in reverse order.
type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
