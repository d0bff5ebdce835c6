// Package bind connects a listenable.Listenable to view components that keep
// their own state, such as UI widgets or template models.
//
// It only uses the public listener API: a component is subscribed with
// ListenWhileMounted and every change is pushed to it as a one-entry state
// patch. Unmount unsubscribes and then runs the component's own teardown.
//
//	m := bind.ListenWhileMounted(store, widget, "title", "count")
//	defer m.Unmount()
package bind
