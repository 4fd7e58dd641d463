package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	InvoicePrefix = "INV-"
	SalePrefix    = "SL-"
)

// Generator produces document numbers that sort by creation time and are
// unique across concurrent callers without a lookup-and-retry loop.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New returns a Generator seeded from crypto/rand.
func New() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

func (g *Generator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// NewInvoiceNumber returns INV-<ULID>.
func (g *Generator) NewInvoiceNumber() string {
	return InvoicePrefix + g.next()
}

// NewSaleNumber returns SL-<ULID>.
func (g *Generator) NewSaleNumber() string {
	return SalePrefix + g.next()
}
