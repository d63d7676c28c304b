// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Store ports are implemented by outbound adapters and called by the application layer.
// The Authorizer port is implemented by the access guard and consulted by the router.
package ports
