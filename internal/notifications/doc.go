// Package notifications delivers the end-of-run notice via pluggable notifiers.
//
// The ntfy notifier publishes to the topic configured in config.toml and the
// desktop notifier shells out to notify-send. NewNotifier combines whichever
// are enabled and degrades to a no-op when none are. Deliver never fails: when
// every transport is unavailable the notice is printed as a console line.
package notifications
