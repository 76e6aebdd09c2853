package writequeue

import "errors"

// ErrQueueClosed reports a permanent condition: the queue has been
// stopped and will accept no further work.
var ErrQueueClosed = errors.New("write queue closed")
