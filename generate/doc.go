// Package generate provides LLM-backed implementations of the seoflow
// Researcher and Writer collaborator contracts.
//
// Both are thin adapters over flowgraph's llm.Client: they build a
// prompt, ask for a JSON document, and parse it into the pipeline's
// result types. Retry, rollback and persistence stay in the
// orchestrator; this package only classifies failures (client errors
// are reported as transient so the orchestrator's retry policy can
// act on them).
package generate
