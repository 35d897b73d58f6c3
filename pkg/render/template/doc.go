// Package template defines the template engine contract page renderers rely
// on, keeping the go-template adapter swappable.
package template
