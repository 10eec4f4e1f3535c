package commands

import (
	"context"
	"fmt"
	"runtime"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/rios0rios0/blockwatch/internal/domain/entities"
	"github.com/rios0rios0/blockwatch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/blockwatch/internal/infrastructure/repositories"
)

const (
	defaultExternalConcurrency = 4
	defaultExternalTimeout     = time.Minute
)

type validationTask struct {
	block     *entities.Block
	validator repositories.ValidatorRepository
}

type externalBounds struct {
	slots   *semaphore.Weighted
	timeout time.Duration
}

// ValidatorPipeline evaluates the registered validators against modified blocks.
type ValidatorPipeline struct {
	registry *infraRepos.ValidatorRegistry
}

// NewValidatorPipeline creates a new ValidatorPipeline.
func NewValidatorPipeline(registry *infraRepos.ValidatorRegistry) *ValidatorPipeline {
	return &ValidatorPipeline{registry: registry}
}

// Run returns one result per (modified block, triggered validator) pair, ordered by
// file, block pre-order and registry order, whatever order they completed in.
// Internal validators share a worker pool; external ones are bounded per validator
// and each call has its own timeout.
func (it *ValidatorPipeline) Run(
	ctx context.Context,
	files []*entities.FileBlocks,
	selection entities.ValidatorSelection,
) []entities.Result {
	var tasks []validationTask
	for _, file := range files {
		file.Walk(func(block *entities.Block) {
			if !block.IsContentModified {
				return
			}
			for _, validator := range it.registry.All() {
				if selection.Allows(validator.Name()) && validator.Detect(block) {
					tasks = append(tasks, validationTask{block: block, validator: validator})
				}
			}
		})
	}
	logger.Debugf("Running %d validation(s)", len(tasks))

	bounds := make(map[string]externalBounds)
	for _, validator := range it.registry.All() {
		if validator.External() {
			bounds[validator.Name()] = boundsOf(validator)
		}
	}

	results := make([]entities.Result, len(tasks))
	var internal, external errgroup.Group
	internal.SetLimit(runtime.GOMAXPROCS(0))
	for i, task := range tasks {
		if !task.validator.External() {
			internal.Go(func() error {
				results[i] = evaluate(ctx, task)
				return nil
			})
			continue
		}
		bound := bounds[task.validator.Name()]
		external.Go(func() error {
			if err := bound.slots.Acquire(ctx, 1); err != nil {
				results[i] = entities.NewResult(task.block, task.validator.Name(), nil,
					entities.NewExecutionError(task.validator.Name(), err))
				return nil
			}
			defer bound.slots.Release(1)

			callCtx, cancel := context.WithTimeout(ctx, bound.timeout)
			defer cancel()
			results[i] = evaluate(callCtx, task)
			return nil
		})
	}
	_ = internal.Wait() // tasks report failures through their result
	_ = external.Wait()
	return results
}

func evaluate(ctx context.Context, task validationTask) (result entities.Result) {
	name := task.validator.Name()
	defer func() {
		if recovered := recover(); recovered != nil {
			result = entities.NewResult(task.block, name, nil,
				entities.NewExecutionError(name, fmt.Errorf("validator panicked: %v", recovered)))
		}
	}()

	violations, err := task.validator.Validate(ctx, task.block)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%w)", err, ctxErr)
		}
		logger.Debugf("%s failed on %s:%s: %v", name, task.block.Path, task.block.DisplayName(), err)
		return entities.NewResult(task.block, name, nil, entities.NewExecutionError(name, err))
	}
	return entities.NewResult(task.block, name, violations, nil)
}

func boundsOf(validator repositories.ValidatorRepository) externalBounds {
	concurrency, timeout := defaultExternalConcurrency, defaultExternalTimeout
	if limited, ok := validator.(repositories.ExternalLimits); ok {
		if c, t := limited.Limits(); c > 0 && t > 0 {
			concurrency, timeout = c, t
		}
	}
	return externalBounds{slots: semaphore.NewWeighted(int64(concurrency)), timeout: timeout}
}
