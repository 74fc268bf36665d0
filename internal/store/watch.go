package store

import (
	"context"
	"log"
)

// Watch turns a pull query into a push stream. The query runs once
// immediately (replay-latest-on-subscribe) and then once per change
// signal on topic. The returned channel closes when ctx is done or the
// hub shuts down. Query errors are logged and skip the emission; the
// stream stays subscribed and retries on the next change.
func Watch[T any](ctx context.Context, hub *Hub, topic string, query func() (T, error)) <-chan T {
	out := make(chan T, 1)
	sig, cancel := hub.Subscribe(topic)

	go func() {
		defer close(out)
		defer cancel()

		send := func() bool {
			v, err := query()
			if err != nil {
				log.Printf("watch %s: query failed: %v", topic, err)
				return true
			}
			select {
			case out <- v:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sig:
				if !ok {
					return
				}
				if !send() {
					return
				}
			}
		}
	}()

	return out
}
