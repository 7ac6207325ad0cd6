// Package event provides a synchronous publish/subscribe bus.
//
// Handlers subscribe to topic patterns and run on the publisher's goroutine
// in subscription order. Handler failures and panics are collected and
// returned from Publish; they never stop delivery to later handlers.
//
//	bus := event.NewBus()
//	sub, _ := bus.Subscribe("selection.**", func(ctx context.Context, msg event.Message) error {
//		fmt.Println(msg.Header().Topic)
//		return nil
//	})
//	defer bus.Unsubscribe(sub)
package event
