// Package main provides the entry point for the pwcheck CLI.
//
// pwcheck rates passwords by looking them up in a breached-password corpus
// such as rockyou.txt and scoring their character composition and length.
//
// Usage:
//
//	pwcheck interactive
//	pwcheck check <password>...
//	pwcheck check --list <file>
//
// See --help for all available options.
package main

// main is the entry point for pwcheck.
func main() {
	Execute()
}
