// Package seoflow provides a crash-recoverable coordinator for an
// SEO-article generation pipeline.
//
// A run moves through three phases (research, writing, saving) driven
// by a workflow state machine. Progress is persisted to disk as a JSON
// snapshot after every transition, so an interrupted run can be resumed
// from its last completed phase. Output artifacts are built in a
// private staging directory and published with a single atomic rename;
// no reader ever observes a half-written output directory.
//
// The package is organized into subpackages by domain:
//
//   - progress: progress reporting sinks (callback, log, webhook)
//   - generate: LLM-backed Researcher and Writer implementations
//   - upload: optional best-effort cloud upload of committed artifacts
//   - config: YAML pipeline configuration
//   - testutil: stub collaborators and test helpers
//
// # Quick Start
//
//	orch := seoflow.New(seoflow.Options{
//	    OutputRoot: "output",
//	    Researcher: researcher,
//	    Writer:     writer,
//	})
//	defer orch.Close()
//
//	path, err := orch.Run(ctx, "diabetes management")
//
// See individual package documentation for detailed usage.
package seoflow
