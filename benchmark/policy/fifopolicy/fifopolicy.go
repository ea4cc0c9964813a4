// Package fifopolicy adapts golang-fifo's S3-FIFO cache to the policy
// interface, as an external FIFO-family baseline.
package fifopolicy

import (
	"github.com/scalalang2/golang-fifo/s3fifo"

	"github.com/discochess/sift/benchmark/policy"
)

// Compile-time check that Policy implements policy.Policy.
var _ policy.Policy = (*Policy)(nil)

// Policy runs traces against an S3-FIFO cache.
type Policy struct {
	cache *s3fifo.S3FIFO[string, string]
}

// New creates an S3-FIFO policy with the given capacity. Entries do not
// expire; the zero TTL disables time-based eviction.
func New(capacity int) *Policy {
	return &Policy{cache: s3fifo.New[string, string](capacity, 0)}
}

// Name returns the policy name.
func (p *Policy) Name() string {
	return "s3fifo"
}

// Get retrieves a value by key.
func (p *Policy) Get(key string) (string, bool) {
	return p.cache.Get(key)
}

// Set adds a value to the cache.
func (p *Policy) Set(key, value string) {
	p.cache.Set(key, value)
}

// Len returns the number of items in the cache.
func (p *Policy) Len() int {
	return p.cache.Len()
}
