package x11

import "context"

// Poll starts listening for X events in the background, translating each
// one into its normalized form. Translation failures and connection errors
// are reported on the error channel; both channels close when the context
// is cancelled or the connection dies.
func (c *Client) Poll(ctx context.Context) (<-chan XEvent, <-chan error) {
	ch := make(chan XEvent, 256)
	errch := make(chan error, 8)
	go c.poll(ctx, ch, errch)
	return ch, errch
}

func (c *Client) poll(ctx context.Context, ch chan<- XEvent, errch chan<- error) {
	defer close(ch)
	defer close(errch)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		raw, err := c.conn.WaitForEvent()
		if raw == nil && err == nil {
			errch <- ErrConnectionDied
			return
		}
		if err != nil {
			errch <- err
			continue
		}
		evt, terr := c.ToXEvent(raw)
		if terr != nil {
			errch <- terr
			continue
		}
		if evt != nil {
			ch <- evt
		}
	}
}
