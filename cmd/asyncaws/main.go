// Package main is the entry point for the asyncaws CLI, a signed SQS/SNS
// query client.
package main

import "os"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
