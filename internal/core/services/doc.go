// Package services contains the core business logic implementations
// of the driving ports: library ingest, remedy extraction and search.
package services
