package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// DefaultNumberGenerator issues per-day sequential ticket numbers of the
// form TKT-YYYYMMDD-0001. Uniqueness across restarts is backed by the
// unique index on the number column; a collision surfaces as a duplicate
// key error on save.
type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateKey := time.Now().Format("20060102")

	g.counters[dateKey]++

	number := fmt.Sprintf("TKT-%s-%04d", dateKey, g.counters[dateKey])
	return number, nil
}
