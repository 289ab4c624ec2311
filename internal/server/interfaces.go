package server

// Server is the admin listener's lifecycle.
type Server interface {
	// RunServer serves until Shutdown is called or the listener fails.
	RunServer()

	// Shutdown drains in-flight requests, waiting at most five seconds.
	Shutdown()
}
