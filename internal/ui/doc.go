// Package ui holds the terminal palette used for human-readable CLI output.
package ui
