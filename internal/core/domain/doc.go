// Package domain contains the core business entities for remedy search.
// Types here are plain data structures with no infrastructure dependencies.
package domain
