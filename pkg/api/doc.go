// Package api defines the request and response messages of the billsplitter
// RPC services. Messages are plain structs encoded as JSON; money and weights
// are decimal strings ("12.34") so no precision is lost in transit.
package api
