package assistant

import (
	"context"
	"sync"
)

// resolveProducts fetches every unseen product id referenced by a finalized
// turn. Fetches are independent and concurrent; one failure omits that card
// only. Resolution never blocks finalization: the turn is already sealed
// when this runs.
func (c *Client) resolveProducts(ctx context.Context, ids []string) {
	if c.fetcher == nil || len(ids) == 0 {
		return
	}
	var wg sync.WaitGroup
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := c.cache.Get(id); ok {
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			p, ok := c.cache.Resolve(ctx, c.fetcher, id)
			if !ok {
				c.log.Debug().Str("product_id", id).Msg("product card omitted")
				return
			}
			if c.cfg.OnProduct != nil {
				c.cfg.OnProduct(p)
			}
		}(id)
	}
	wg.Wait()
}
