package workers

import "context"

type Workers struct {
	workers []Worker
}

// NewWorkers groups ws, skipping nil entries.
func NewWorkers(ws ...Worker) *Workers {
	out := &Workers{}
	for _, w := range ws {
		if w != nil {
			out.workers = append(out.workers, w)
		}
	}
	return out
}

// Run starts every worker in registration order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
