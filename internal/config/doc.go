// Package config provides configuration structures and utilities for pwcheck.
// It defines where the breached-password corpus comes from, how results are
// rendered and how the interactive session behaves.
package config
