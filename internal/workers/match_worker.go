package workers

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/talentbridge/talentbridge/internal/models"
)

// Pair is one requirement/candidate scoring unit of work.
type Pair struct {
	Requirement *models.Requirement
	Candidate   *models.Candidate
}

// Outcome classifies what happened to a single pair.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeSkipped
	OutcomeError
)

// ScoreFunc scores and persists one pair. Implementations decide whether the
// pair cleared the threshold (Skipped) and whether the write was an insert or
// a replace.
type ScoreFunc func(ctx context.Context, p Pair) (Outcome, error)

// Tally aggregates per-pair outcomes across a run.
type Tally struct {
	Created int
	Updated int
	Skipped int
	Errors  int
}

func (t Tally) Processed() int {
	return t.Created + t.Updated + t.Skipped + t.Errors
}

// MatchWorkerPool fans scoring work out over a bounded set of goroutines.
// Per-pair errors are tallied and logged, never fatal: one bad profile must
// not sink a batch run. The zero value is usable and Run never mutates the
// receiver, so one pool can serve concurrent runs.
type MatchWorkerPool struct {
	NumWorkers int
	Logger     *logrus.Logger
}

func (p *MatchWorkerPool) Run(ctx context.Context, pairs []Pair, score ScoreFunc) (Tally, error) {
	if score == nil {
		return Tally{}, errors.New("MatchWorkerPool missing dependency: score func must be set")
	}
	numWorkers := p.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 8
	}
	log := p.Logger
	if log == nil {
		log = logrus.New()
	}

	jobs := make(chan Pair)
	outcomes := make(chan Outcome, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go p.runWorker(ctx, "w-"+strconv.Itoa(i+1), log, jobs, outcomes, score, &wg)
	}

feed:
	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- pair:
		}
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	var t Tally
	for o := range outcomes {
		switch o {
		case OutcomeCreated:
			t.Created++
		case OutcomeUpdated:
			t.Updated++
		case OutcomeSkipped:
			t.Skipped++
		default:
			t.Errors++
		}
	}
	return t, ctx.Err()
}

func (p *MatchWorkerPool) runWorker(ctx context.Context, name string, log *logrus.Logger, jobs <-chan Pair, outcomes chan<- Outcome, score ScoreFunc, wg *sync.WaitGroup) {
	defer wg.Done()
	for pair := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome, err := score(ctx, pair)
		if err != nil {
			log.WithFields(logrus.Fields{
				"worker":         name,
				"requirement_id": pair.Requirement.ID,
				"candidate_id":   pair.Candidate.ID,
			}).WithError(err).Error("pair scoring failed")
			outcomes <- OutcomeError
			continue
		}
		outcomes <- outcome
	}
}
