// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package pubsub provides the synchronous subject with topic-keyed observer
// and handler routing, and the asynchronous observer that queues deliveries
// for draining on the consumer's own schedule.
package pubsub
