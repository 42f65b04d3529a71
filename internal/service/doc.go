// Package service contains the application's business logic. Services
// orchestrate stores inside transactions, enforce the task lifecycle
// rules and emit domain events; they never touch HTTP concerns.
package service
