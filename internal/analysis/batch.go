package analysis

import "sync"

// RunBatch runs every request concurrently. Results keep request order; a
// failed request leaves a nil entry and the first error in request order is
// returned.
func RunBatch(reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = Run(reqs[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
