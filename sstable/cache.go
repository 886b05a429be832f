package sstable

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/intellect4all/lsmtree/block"
)

// Cache is the block-cache contract SsTable.ReadBlock consults before
// going to disk, keyed by (sstable id, block index) as spec.md §4.5 and §5
// require. Implementations must be safe for concurrent use — the only
// shared mutable state in the read path (spec.md §5).
type Cache interface {
	Get(sstID uint64, blockIdx int) (*block.Block, bool)
	Insert(sstID uint64, blockIdx int, blk *block.Block)
}

type cacheKey struct {
	sstID    uint64
	blockIdx int
}

// LRUCache is a Cache backed by hashicorp/golang-lru, admitting decoded
// blocks up to a fixed entry count. A cache that returned different bytes
// than a fresh disk read would be a contract violation (spec.md §5); this
// implementation stores the same *block.Block a disk read would produce
// and never mutates it after Insert.
type LRUCache struct {
	inner *lru.Cache[cacheKey, *block.Block]
}

// NewLRUCache creates a cache admitting up to maxBlocks decoded blocks.
func NewLRUCache(maxBlocks int) (*LRUCache, error) {
	inner, err := lru.New[cacheKey, *block.Block](maxBlocks)
	if err != nil {
		return nil, fmt.Errorf("sstable: new block cache: %w", err)
	}
	return &LRUCache{inner: inner}, nil
}

func (c *LRUCache) Get(sstID uint64, blockIdx int) (*block.Block, bool) {
	return c.inner.Get(cacheKey{sstID, blockIdx})
}

func (c *LRUCache) Insert(sstID uint64, blockIdx int, blk *block.Block) {
	c.inner.Add(cacheKey{sstID, blockIdx}, blk)
}
