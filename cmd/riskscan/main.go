// Package main provides the entry point for the RiskScan CLI.
//
// RiskScan submits screenshots, text, and website URLs to a risk analysis
// backend, prints the verdict, and keeps the backend's scan history and risk
// statistics on screen.
//
// Usage:
//
//	riskscan text "verify your account now"
//	riskscan website http://example.com
//	riskscan screenshot shot.png
//	riskscan watch
//
// See --help for all available options.
package main

import "github.com/joho/godotenv"

// main is the entry point for RiskScan.
func main() {
	// A missing .env file is normal.
	_ = godotenv.Load() //nolint:errcheck // optional file
	Execute()
}
