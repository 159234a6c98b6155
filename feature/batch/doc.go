// Package batch queues assets and saves them in bulk.
//
// An AssetBatch accumulates assets and saves them whenever the queue reaches
// its configured size. Before saving it can look assets up by identity so
// that only existing assets are updated (see CreationHandling), matching
// qualified names case-insensitively or across tables and views when asked
// to. Failed saves are either returned or captured as FailedBatch values,
// which a Journal can persist and replay later.
//
// A ParallelBatch spreads assets over several AssetBatch shards so that
// many goroutines can add concurrently and shards flush in parallel.
//
// # Usage
//
//	b := batch.New(assetService, searchService, batch.DefaultOptions(), logger)
//	for _, a := range list {
//		if _, err := b.Add(ctx, a); err != nil {
//			return err
//		}
//	}
//	if _, err := b.Flush(ctx); err != nil {
//		return err
//	}
//	fmt.Println(b.NumCreated(), b.NumUpdated())
package batch
