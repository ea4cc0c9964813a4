// Package sievepolicy adapts this library's SIEVE cache to the policy
// interface.
package sievepolicy

import (
	"github.com/discochess/sift"
	"github.com/discochess/sift/benchmark/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy runs traces against a sift.Cache.
type Policy struct {
	cache *sift.Cache[string, string]
}

// New creates a SIEVE policy with the given capacity.
func New(capacity int) (*Policy, error) {
	cache, err := sift.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Policy{cache: cache}, nil
}

// Name returns the policy name.
func (p *Policy) Name() string {
	return "sieve"
}

// Get looks up key, marking the entry visited on a hit.
func (p *Policy) Get(key string) (string, bool) {
	return p.cache.Get(key)
}

// Set stores value under key. A refused insert (every entry shielded) is
// treated as a drop, matching how a cache-aside consumer would experience it.
func (p *Policy) Set(key, value string) {
	p.cache.Insert(key, value)
}

// Len returns the number of items in the cache.
func (p *Policy) Len() int {
	return p.cache.Len()
}
