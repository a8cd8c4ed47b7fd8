package compute

type Backend interface {
	Name() string
	Available() bool
	Workers() int
	ParallelFor(n, minChunk int, fn func(start, end int))
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.Workers() > 1 {
		return cpu
	}
	return NewSerialBackend()
}

// ParallelFor runs fn over [0, n) on the active backend.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	activeBackend.ParallelFor(n, minChunk, fn)
}
