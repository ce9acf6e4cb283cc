package client

import "sync"

// SyncClient serializes access to a Client so it can be shared between
// goroutines. Each Send still writes all chunks of its message before the
// next Send starts.
type SyncClient struct {
	mu sync.Mutex
	c  *Client
}

// NewSyncClient wraps c. c must not be used directly afterwards.
func NewSyncClient(c *Client) *SyncClient {
	return &SyncClient{c: c}
}

// Send calls Client.Send under the lock.
func (s *SyncClient) Send(message []byte) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Send(message)
}

// Close calls Client.Close under the lock.
func (s *SyncClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Close()
}
