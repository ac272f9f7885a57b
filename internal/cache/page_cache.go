package cache

import (
	"time"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	pageCacheName         = "pages"
	defaultPageCacheTTL   = 5 * time.Minute
	pageCacheCleanupEvery = 10 * time.Minute
)

// RenderedPage is a public page document with the fields needed to authorize a view
type RenderedPage struct {
	PageID    string
	OwnerID   string
	Published bool
	Document  string
}

// PageCacheInterface is implemented by PageCache
type PageCacheInterface interface {
	Get(pageID string) (*RenderedPage, bool)
	Set(page *RenderedPage)
	Invalidate(pageID string)
	Size() int
}

// PageCache keeps rendered landing page documents in memory
type PageCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewPageCache creates a page cache whose entries expire after ttl
func NewPageCache(ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = defaultPageCacheTTL
	}
	return &PageCache{
		cache: gocache.New(ttl, pageCacheCleanupEvery),
		ttl:   ttl,
	}
}

// Get returns the cached document for a page
func (pc *PageCache) Get(pageID string) (*RenderedPage, bool) {
	data, found := pc.cache.Get(pageID)
	if !found {
		metrics.CacheMisses.WithLabelValues(pageCacheName).Inc()
		return nil, false
	}

	page, ok := data.(*RenderedPage)
	if !ok {
		logger.Error("Invalid page cache data type", zap.String("page_id", pageID))
		pc.cache.Delete(pageID)
		metrics.CacheMisses.WithLabelValues(pageCacheName).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(pageCacheName).Inc()
	return page, true
}

// Set stores a rendered page
func (pc *PageCache) Set(page *RenderedPage) {
	pc.cache.Set(page.PageID, page, pc.ttl)
	metrics.CacheSize.WithLabelValues(pageCacheName).Set(float64(pc.cache.ItemCount()))
}

// Invalidate drops a page so the next view re-renders it
func (pc *PageCache) Invalidate(pageID string) {
	pc.cache.Delete(pageID)
	metrics.CacheSize.WithLabelValues(pageCacheName).Set(float64(pc.cache.ItemCount()))
	logger.Debug("Page cache invalidated", zap.String("page_id", pageID))
}

// Size returns the number of cached pages, including expired ones not yet cleaned up
func (pc *PageCache) Size() int {
	return pc.cache.ItemCount()
}
