// Package lrupolicy adapts hashicorp's LRU cache to the policy interface.
// It is the exact-recency baseline SIEVE is compared against.
package lrupolicy

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/sift/benchmark/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy runs traces against an LRU cache.
type Policy struct {
	cache *lru.Cache[string, string]
}

// New creates an LRU policy with the given capacity.
func New(capacity int) (*Policy, error) {
	c, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Policy{cache: c}, nil
}

// Name returns the policy name.
func (p *Policy) Name() string {
	return "lru"
}

// Get retrieves a value by key, refreshing its recency.
func (p *Policy) Get(key string) (string, bool) {
	return p.cache.Get(key)
}

// Set adds a value to the cache.
func (p *Policy) Set(key, value string) {
	p.cache.Add(key, value)
}

// Len returns the number of items in the cache.
func (p *Policy) Len() int {
	return p.cache.Len()
}
