// Package testutil provides test utilities for gotcha, including:
//   - Python interpreter helpers for integration tests (python.go)
//
// Integration test utilities require a real python3 binary and are gated
// behind the "integration" build tag. To run integration tests:
//
//	go test -tags=integration ./...
package testutil
