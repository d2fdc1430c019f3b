// File: api/pubsub.go
// Package api defines publish/subscribe contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Observer receives events published to topics it subscribed to.
// Inform runs on the publisher's thread; implementations must not block it.
type Observer interface {
	// Inform delivers one event. origin is the publishing subject's name.
	Inform(topic string, event any, origin string)
	// Alive reports whether the observer still wants deliveries.
	// Subjects prune entries whose observer reports false.
	Alive() bool
}

// Handler is a named free callable subscribed to a topic.
type Handler func(topic string, event any, origin string)

// Subject routes topic-tagged events to subscribed observers and handlers.
type Subject interface {
	// Name returns the subject's name, passed to observers as origin.
	Name() string
	// Subscribe registers an observer for a topic. Repeated subscription
	// delivers repeatedly.
	Subscribe(topic string, obs Observer)
	// SubscribeHandler registers a named handler callable for a topic.
	SubscribeHandler(topic, name string, h Handler)
	// Unsubscribe removes the first matching observer entry.
	Unsubscribe(topic string, obs Observer) bool
	// UnsubscribeHandler removes the first handler entry with the given name.
	UnsubscribeHandler(topic, name string) bool
	// Publish delivers event to every current subscriber of topic.
	Publish(topic string, event any)
}
