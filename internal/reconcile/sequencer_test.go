package reconcile_test

import (
	"sync"
	"testing"

	"github.com/pesapots/backend/internal/reconcile"
	"github.com/stretchr/testify/assert"
)

func TestSequencerDiscardsStale(t *testing.T) {
	var s reconcile.Sequencer

	first := s.Next()
	second := s.Next()
	assert.Less(t, first, second)

	assert.True(t, s.Accept(second))
	assert.False(t, s.Accept(first), "an older response must be discarded after a newer one was applied")
	assert.Equal(t, second, s.Latest())
}

func TestSequencerInOrder(t *testing.T) {
	var s reconcile.Sequencer

	first := s.Next()
	second := s.Next()

	assert.True(t, s.Accept(first))
	assert.True(t, s.Accept(second))
	assert.False(t, s.Accept(second), "a token is only accepted once")
}

func TestSequencerConcurrent(t *testing.T) {
	var s reconcile.Sequencer
	var wg sync.WaitGroup

	tokens := make(chan reconcile.Token, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- s.Next()
		}()
	}
	wg.Wait()
	close(tokens)

	seen := map[reconcile.Token]bool{}
	for token := range tokens {
		assert.False(t, seen[token], "tokens are unique")
		seen[token] = true
	}
	assert.Len(t, seen, 100)
}
