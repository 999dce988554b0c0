// Package ports defines the interfaces the application layer depends on.
// Infrastructure adapters implement them; tests substitute fakes.
package ports
