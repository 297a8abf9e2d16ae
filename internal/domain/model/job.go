package model

// Job is one requirement vector of a batch, queued for a worker.
type Job struct {
	BatchID      string
	Index        int
	Requirements *RequirementVector
	// Reply receives the outcome. It must be buffered for the whole batch
	// so a worker never blocks on an abandoned batch.
	Reply chan<- JobResult
}

// JobResult carries the result for the job at Index.
type JobResult struct {
	Index  int
	Result Result
}
