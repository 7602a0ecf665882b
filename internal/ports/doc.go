// Package ports defines the interfaces between layers. Service ports are
// implemented by the application layer and called by inbound adapters.
// Client ports are implemented by outbound adapters and called by the
// application layer or the CLI.
package ports
