// Package event carries the process-wide notifications the content layer
// emits: translation updates, language switches and snapshot replacements.
// Signals are pure triggers with no payload; a subscriber reacts by
// re-reading whatever state it renders from.
//
// Subscribers attach through an explicit Bus instance rather than a global
// event target, so consumers subscribe deterministically and tests can run
// isolated buses:
//
//	bus := event.NewBus()
//	defer bus.Close()
//
//	sub := bus.Subscribe(ctx)
//	go func() {
//		for sig := range sub.Signals() {
//			rerender(sig.Type)
//		}
//	}()
//
//	bus.Publish(event.NewSignal(event.LanguageChanged))
//
// Delivery is non-blocking; a slow subscriber misses signals instead of
// stalling publishers.
package event
