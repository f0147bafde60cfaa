// Package output renders tiapp command results in the configured format.
package output
