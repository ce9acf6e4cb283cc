package client

// Observer receives client events. Calls are made synchronously from Send and
// Close, so implementations must be quick.
type Observer interface {
	// HandleOpened is called after a new channel handle is created.
	HandleOpened()

	// HandleClosed is called after the channel handle is dropped. cause is the
	// transport error that triggered the teardown, or nil for Close.
	HandleClosed(cause error)

	// MessageSent is called after every chunk of a message was written.
	MessageSent(id uint32, chunks int, bytes int)

	// SendFailed is called when a message could not be fully written.
	SendFailed(id uint32, err error)
}

type noopObserver struct{}

func (noopObserver) HandleOpened()                {}
func (noopObserver) HandleClosed(error)           {}
func (noopObserver) MessageSent(uint32, int, int) {}
func (noopObserver) SendFailed(uint32, error)     {}
