package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store is the opaque key/value cache used for read-through snapshots.
// Entries are a convenience: a miss always falls back to the database.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	// Remove drops a single key and reports whether it was present.
	Remove(key string) bool
	// InvalidatePrefix drops every key starting with prefix and returns how many were removed.
	InvalidatePrefix(prefix string) int
}

// LRUStore is an in-process Store with a bounded size and per-entry TTL.
type LRUStore struct {
	lru *expirable.LRU[string, []byte]
}

// NewLRUStore creates a store holding at most size entries for ttl each.
func NewLRUStore(size int, ttl time.Duration) *LRUStore {
	return &LRUStore{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *LRUStore) Get(key string) ([]byte, bool) {
	return s.lru.Get(key)
}

func (s *LRUStore) Set(key string, value []byte) {
	s.lru.Add(key, value)
}

func (s *LRUStore) Remove(key string) bool {
	return s.lru.Remove(key)
}

func (s *LRUStore) InvalidatePrefix(prefix string) int {
	removed := 0
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) && s.lru.Remove(key) {
			removed++
		}
	}
	return removed
}

// InvoiceKey is the cache key of an invoice snapshot.
func InvoiceKey(invoiceID string) string {
	return "invoice:" + invoiceID
}

// MemberInvoicesPrefix covers every cached page of a member's invoice list.
func MemberInvoicesPrefix(memberID string) string {
	return "member_invoices:" + memberID + ":"
}
