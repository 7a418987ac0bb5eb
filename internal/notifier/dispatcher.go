package notifier

import (
	"context"
	"log"
	"sync"
	"time"
)

// Dispatcher decouples workflow operations from notification delivery: Notify
// enqueues and returns immediately, a small worker pool drains the queue. A
// full queue or a failed send is logged and dropped, never surfaced.
type Dispatcher struct {
	queue  chan Message
	sender Sender
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, workers, queueSize int) *Dispatcher {
	d := &Dispatcher{
		queue:  make(chan Message, queueSize),
		sender: sender,
	}

	for i := 1; i <= workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

func (d *Dispatcher) Notify(ctx context.Context, recipient, message, link string) {
	if recipient == "" {
		return
	}

	msg := Message{
		Recipient: recipient,
		Text:      message,
		Link:      link,
		Timestamp: time.Now().UTC(),
	}

	select {
	case d.queue <- msg:
	default:
		log.Printf("notifier: queue full, dropped notification for %s", recipient)
	}
}

func (d *Dispatcher) worker(workerID int) {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sender.Send(ctx, msg); err != nil {
			log.Printf("notifier worker %d: failed to deliver to %s: %v", workerID, msg.Recipient, err)
		}
		cancel()
	}
}

// Shutdown stops accepting work and waits for in-flight deliveries, bounded
// by ctx.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	close(d.queue)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("notifier shut down cleanly")
	case <-ctx.Done():
		log.Println("notifier shutdown timed out")
	}
}
