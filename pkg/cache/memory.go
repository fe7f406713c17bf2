package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
)

// Memory is a bounded in-process cache evicting the least recently used result
type Memory struct {
	lru *lru.Cache[uint64, *compose.Result]
}

// NewMemory creates a memory cache holding at most size results
func NewMemory(size int) (*Memory, error) {
	c, err := lru.New[uint64, *compose.Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &Memory{lru: c}, nil
}

// Get returns the cached result
func (m *Memory) Get(ctx context.Context, key uint64) (*compose.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r, ok := m.lru.Get(key)
	return r, ok, nil
}

// Put stores a result
func (m *Memory) Put(ctx context.Context, key uint64, result *compose.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.lru.Add(key, result)
	return nil
}

// Len returns the number of cached results
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Close drops all entries
func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
