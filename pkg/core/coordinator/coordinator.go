// Package coordinator fans out the per-section analysis agents over a filing
// and collects their results into a stable, catalog-ordered set.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/filing"
)

// ProviderSource resolves the model capability backing a named agent.
// agent.Manager satisfies this; tests inject a fixed fake.
type ProviderSource interface {
	GetProvider(agentName string) agent.Provider
}

// Coordinator owns the immutable agent catalog and dispatches one concurrent
// task per agent. It never aborts a run for a single-agent failure: every
// outcome, good or bad, lands in its own result slot.
type Coordinator struct {
	catalog   []agent.Spec
	providers ProviderSource
}

func New(catalog []agent.Spec, providers ProviderSource) *Coordinator {
	return &Coordinator{catalog: catalog, providers: providers}
}

// Run analyzes the filing with every catalog agent in parallel and returns
// the results in catalog order, regardless of completion order.
//
// Agents whose target section cannot be resolved are marked not_found without
// spending a model call. All dispatched tasks are awaited behind a single
// barrier; scoring never sees a still-running task.
func (c *Coordinator) Run(ctx context.Context, f *filing.Filing) []agent.SectionAnalysis {
	fmt.Printf("Deploying %d specialized agents...\n", len(c.catalog))
	start := time.Now()

	listing := f.Listing()
	results := make([]agent.SectionAnalysis, len(c.catalog))

	var wg sync.WaitGroup
	for i, spec := range c.catalog {
		key, ok := f.Resolve(spec.SectionAliases...)
		if !ok {
			results[i] = agent.SectionAnalysis{
				Agent:  spec.Name,
				Target: spec.TargetItem,
				Status: agent.StatusNotFound,
			}
			fmt.Printf("  [%s] Target section not found, skipping\n", spec.Name)
			continue
		}

		content, truncated := f.Section(key, spec.MaxContentChars)
		task := agent.Task{
			Spec:       spec,
			SectionKey: key,
			Content:    content,
			Truncated:  truncated,
			Listing:    listing,
		}

		// Each task owns exactly one slot, so concurrent completion never
		// needs a lock.
		wg.Add(1)
		go func(slot int, task agent.Task) {
			defer wg.Done()
			runner := agent.NewRunner(c.providers.GetProvider(task.Spec.Name))
			results[slot] = runner.Run(ctx, task, f)
		}(i, task)
	}
	wg.Wait()

	fmt.Printf("All analyses completed in %v\n", time.Since(start))
	return results
}

// Catalog returns the configured agent specs in dispatch order.
func (c *Coordinator) Catalog() []agent.Spec {
	return c.catalog
}
