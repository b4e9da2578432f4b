// catalogctl generates a seeded catalog offline and prints how the API would
// shape it under a given configuration document or scenario.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
