//go:build tools

package tools

// Tool dependencies tracked with blank imports so go.mod pins their
// versions. Run: go run github.com/vektra/mockery/v2 (from the module
// root) to regenerate pkg/dnssd/mocks.
import (
	_ "github.com/vektra/mockery/v2"
)
