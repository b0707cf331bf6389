package workers

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge/internal/models"
)

func testPairs(n int) []Pair {
	out := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Pair{
			Requirement: &models.Requirement{ID: "req-1"},
			Candidate:   &models.Candidate{ID: "cand-" + strconv.Itoa(i)},
		})
	}
	return out
}

func TestMatchWorkerPoolProcessesEveryPair(t *testing.T) {
	pool := &MatchWorkerPool{NumWorkers: 4}

	var mu sync.Mutex
	seen := map[string]bool{}

	tally, err := pool.Run(context.Background(), testPairs(50), func(ctx context.Context, p Pair) (Outcome, error) {
		mu.Lock()
		seen[p.Candidate.ID] = true
		mu.Unlock()
		return OutcomeCreated, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 50, tally.Created)
	assert.Equal(t, 50, tally.Processed())
	assert.Len(t, seen, 50)
}

func TestMatchWorkerPoolTalliesMixedOutcomes(t *testing.T) {
	pool := &MatchWorkerPool{NumWorkers: 3}

	tally, err := pool.Run(context.Background(), testPairs(40), func(ctx context.Context, p Pair) (Outcome, error) {
		n, _ := strconv.Atoi(p.Candidate.ID[len("cand-"):])
		switch n % 4 {
		case 0:
			return OutcomeCreated, nil
		case 1:
			return OutcomeUpdated, nil
		case 2:
			return OutcomeSkipped, nil
		default:
			return OutcomeError, errors.New("bad profile")
		}
	})
	require.NoError(t, err)
	assert.Equal(t, Tally{Created: 10, Updated: 10, Skipped: 10, Errors: 10}, tally)
}

func TestMatchWorkerPoolErrorDoesNotStopRun(t *testing.T) {
	pool := &MatchWorkerPool{NumWorkers: 2}

	tally, err := pool.Run(context.Background(), testPairs(10), func(ctx context.Context, p Pair) (Outcome, error) {
		if p.Candidate.ID == "cand-0" {
			return OutcomeError, errors.New("boom")
		}
		return OutcomeUpdated, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Errors)
	assert.Equal(t, 9, tally.Updated)
}

func TestMatchWorkerPoolZeroValueWorks(t *testing.T) {
	pool := &MatchWorkerPool{}
	tally, err := pool.Run(context.Background(), testPairs(3), func(ctx context.Context, p Pair) (Outcome, error) {
		return OutcomeSkipped, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tally.Skipped)
	// Run resolves defaults locally, the shared receiver stays untouched.
	assert.Zero(t, pool.NumWorkers)
	assert.Nil(t, pool.Logger)
}

func TestMatchWorkerPoolSupportsConcurrentRuns(t *testing.T) {
	pool := &MatchWorkerPool{}

	var wg sync.WaitGroup
	tallies := make([]Tally, 4)
	for i := range tallies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tally, err := pool.Run(context.Background(), testPairs(25), func(ctx context.Context, p Pair) (Outcome, error) {
				return OutcomeCreated, nil
			})
			assert.NoError(t, err)
			tallies[i] = tally
		}(i)
	}
	wg.Wait()

	for _, tally := range tallies {
		assert.Equal(t, 25, tally.Created)
	}
}

func TestMatchWorkerPoolStopsOnCancel(t *testing.T) {
	pool := &MatchWorkerPool{NumWorkers: 1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tally, err := pool.Run(ctx, testPairs(100), func(ctx context.Context, p Pair) (Outcome, error) {
		return OutcomeCreated, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, tally.Processed(), 100)
}

func TestMatchWorkerPoolRequiresScoreFunc(t *testing.T) {
	pool := &MatchWorkerPool{}
	_, err := pool.Run(context.Background(), testPairs(1), nil)
	assert.Error(t, err)
}
