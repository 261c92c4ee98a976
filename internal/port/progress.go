package port

// ProgressFunc receives coarse progress checkpoints (0-100) with a short
// stage description. It is advisory only: implementations must not block
// and errors cannot be signalled back into the pipeline.
type ProgressFunc func(percent int, stage string)
