// Command catalogctl inspects and arranges a merchant's catalog through the
// catalog service, the same way a point-of-sale client does.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
