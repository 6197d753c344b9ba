package ports

import (
	"context"
	"time"
)

// ActivityTouch records that an account was observed active at Timestamp.
type ActivityTouch struct {
	Username  string
	Timestamp time.Time
}

type ActivityService interface {
	Process(ctx context.Context, touch ActivityTouch) error
}
