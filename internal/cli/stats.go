package cli

import (
	"context"
	"sync/atomic"

	"github.com/openeia/eiascout/pkg/observability"
)

// tally counts API requests and cache hits for the run summary line.
type tally struct {
	observability.NoopHTTPHooks
	observability.NoopCacheHooks

	requests atomic.Int64
	hits     atomic.Int64
}

func (t *tally) OnRequest(ctx context.Context, method, host, path string) {
	t.requests.Add(1)
}

func (t *tally) OnCacheHit(ctx context.Context, keyType string) {
	t.hits.Add(1)
}

var (
	_ observability.HTTPHooks  = (*tally)(nil)
	_ observability.CacheHooks = (*tally)(nil)
)

// installTally registers a fresh tally with the observability registry and
// returns it with a restore function. The restore function must be called
// before the process prints its summary.
func installTally() (*tally, func()) {
	t := &tally{}
	observability.SetHTTPHooks(t)
	observability.SetCacheHooks(t)
	return t, observability.Reset
}
