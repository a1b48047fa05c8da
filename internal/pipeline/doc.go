// Package pipeline implements the durable analysis pipeline for submitted
// feedback. A run executes three ordered steps (categorize, score, persist);
// each step's result is cached on the run so a retry resumes from the first
// incomplete step, and a completed run produces exactly one persisted
// record. The Service owns validation, the submission queue, and the worker
// pool that drains it.
package pipeline
