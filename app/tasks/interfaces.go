package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The main application starts and stops it; handlers may
// enqueue one-off tasks.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
