// worker/pool.go
package worker

import "sync"

// Job produces one output.
type Job[T any] func() T

// Result pairs a job's output with the position it was submitted at.
type Result[T any] struct {
	Index  int
	Output T
}

// Pool runs jobs on a fixed set of goroutines. Results arrive in completion
// order; the Results channel is closed after Close once every job is done.
type Pool[T any] struct {
	jobs    chan indexedJob[T]
	results chan Result[T]
	wg      sync.WaitGroup
	once    sync.Once
}

type indexedJob[T any] struct {
	index int
	fn    Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		jobs:    make(chan indexedJob[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- Result[T]{Index: job.index, Output: job.fn()}
	}
}

// Submit queues a job. It blocks while the queue is full and must not be
// called after Close.
func (p *Pool[T]) Submit(index int, fn Job[T]) {
	p.jobs <- indexedJob[T]{index: index, fn: fn}
}

// Close stops accepting jobs. Safe to call more than once.
func (p *Pool[T]) Close() {
	p.once.Do(func() { close(p.jobs) })
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Map applies fn to every input on workerCount goroutines and returns the
// outputs in input order.
func Map[In, Out any](workerCount int, inputs []In, fn func(In) Out) []Out {
	out := make([]Out, len(inputs))
	if len(inputs) == 0 {
		return out
	}

	p := NewPool[Out](workerCount, len(inputs))
	go func() {
		for i, in := range inputs {
			p.Submit(i, func() Out { return fn(in) })
		}
		p.Close()
	}()

	for r := range p.Results() {
		out[r.Index] = r.Output
	}
	return out
}
