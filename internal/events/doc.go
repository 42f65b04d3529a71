// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events without knowing which handlers will process them,
// which keeps the publishing flow decoupled from the notification fan-out.
// The only wire between the two is the Event type and its JSON payload.
package events
