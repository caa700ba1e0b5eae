// Package harvest defines the core types and the orchestration logic for
// turning raw source documents into month-keyed update snapshots.
package harvest
