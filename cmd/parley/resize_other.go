//go:build !unix

package main

import "os"

// notifyResize is a no-op where the platform has no resize signal.
func notifyResize(chan<- os.Signal) {}
