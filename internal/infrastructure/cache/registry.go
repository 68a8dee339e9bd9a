package cache

import (
	"sort"
	"sync"
	"time"
)

// UploadRecord is the transient metadata kept for a processed upload.
// Records live only in process memory and expire after the TTL; nothing
// here survives a restart.
type UploadRecord struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	AudioURL   string    `json:"audioURL"`
	Duration   float64   `json:"duration"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// UploadRegistry is an in-memory TTL registry of recent uploads
type UploadRegistry struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*registryItem
}

type registryItem struct {
	record     UploadRecord
	expireTime time.Time
}

// NewUploadRegistry creates a registry whose entries expire after ttl
func NewUploadRegistry(ttl time.Duration) *UploadRegistry {
	r := &UploadRegistry{
		ttl:   ttl,
		items: make(map[string]*registryItem),
	}

	// Cleanup goroutine removes expired records
	go r.cleanupExpired()

	return r
}

// Put records an upload
func (r *UploadRegistry) Put(rec UploadRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[rec.ID] = &registryItem{
		record:     rec,
		expireTime: time.Now().Add(r.ttl),
	}
}

// Get retrieves a record by id (false if unknown or expired)
func (r *UploadRegistry) Get(id string) (UploadRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists || time.Now().After(item.expireTime) {
		return UploadRecord{}, false
	}
	return item.record, true
}

// Recent returns all unexpired records, newest first
func (r *UploadRegistry) Recent() []UploadRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	records := make([]UploadRecord, 0, len(r.items))
	for _, item := range r.items {
		if now.After(item.expireTime) {
			continue
		}
		records = append(records, item.record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})
	return records
}

// cleanupExpired periodically removes expired records
func (r *UploadRegistry) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for id, item := range r.items {
			if now.After(item.expireTime) {
				delete(r.items, id)
			}
		}
		r.mu.Unlock()
	}
}
