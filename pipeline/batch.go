package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/npillmayer/ccgsrl"
	"github.com/npillmayer/ccgsrl/ccg/nbest"
	"github.com/npillmayer/ccgsrl/constraint"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/semaphore"
)

// Report collects the results of a batch run.
type Report struct {
	RunID    uuid.UUID
	Started  time.Time
	Duration time.Duration
	Results  []*Result // in input order
}

// ParseAll parses a batch of sentences, at most conf.Workers at a time. A
// failing sentence is recorded in its result and does not affect the others.
// If ctx is cancelled, sentences not yet started fail with the context's
// error.
func (p *Parser) ParseAll(ctx context.Context, sentences [][]string) *Report {
	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
		Results: make([]*Result, len(sentences)),
	}
	workers := p.conf.Workers
	if workers <= 0 {
		workers = 1
	}
	tracer().Infof("run %s: parsing %d sentences with %d workers", report.RunID, len(sentences), workers)
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	for i, words := range sentences {
		if err := sem.Acquire(ctx, 1); err != nil {
			report.Results[i] = &Result{Index: i, Words: words, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, words []string) {
			defer wg.Done()
			defer sem.Release(1)
			res, err := p.Parse(ctx, words)
			res.Index, res.Err = i, err
			if err != nil {
				tracer().Infof("sentence %d failed: %v", i, err)
			}
			report.Results[i] = res
		}(i, words)
	}
	wg.Wait()
	report.Duration = time.Since(report.Started)
	tracer().Infof("run %s: %d of %d sentences parsed in %s", report.RunID,
		report.Parsed(), len(sentences), report.Duration)
	return report
}

// Parsed returns the number of sentences parsed successfully.
func (r *Report) Parsed() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failures counts failed sentences by kind of failure.
func (r *Report) Failures() map[string]int {
	failures := make(map[string]int)
	for _, res := range r.Results {
		if res.OK() {
			continue
		}
		failures[failureKind(res.Err)]++
	}
	return failures
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ccgsrl.ErrParseFailure):
		return "parse failure"
	case errors.Is(err, ccgsrl.ErrNoRootDerivation):
		return "no root derivation"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}
	return "other"
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %d/%d sentences parsed in %s\n", r.RunID, r.Parsed(),
		len(r.Results), r.Duration.Round(time.Millisecond))
	failures := r.Failures()
	kinds := maps.Keys(failures)
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %-20s %d\n", k, failures[k])
	}
	return b.String()
}

// ReparseAll re-ranks the n-best list of every sentence of a report with the
// constraints for that sentence. constraints is indexed like r.Results; a
// missing or nil set selects the best parse. Failed sentences yield a nil
// parse and an error wrapping ccgsrl.ErrNoParseAvailable.
func (r *Report) ReparseAll(constraints []*constraint.Set) ([]*nbest.Parse, []error) {
	parses := make([]*nbest.Parse, len(r.Results))
	errs := make([]error, len(r.Results))
	for i, res := range r.Results {
		var cs *constraint.Set
		if i < len(constraints) {
			cs = constraints[i]
		}
		parses[i], errs[i] = res.Reparse(cs)
	}
	return parses, errs
}
