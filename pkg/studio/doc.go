// Package studio holds the client-side state of a VoiceForge session: the
// uploaded sample and cloned voice, the single in-flight generation job, and
// the podcast cast and script.
//
// A Pipeline tracks the upload → clone → generate flow. At most one job
// (clone or generate) may be active at a time; starting another while one
// is running returns ErrBusy rather than queueing or interleaving. Progress
// events from the generation stream are folded into the pipeline state as
// they arrive, so presentation code can poll Snapshot for a consistent view.
//
// A PodcastSession tracks the two-role cast assignment and screenplay
// script and issues a single batched render. Its generating flag is a lock
// independent of the Pipeline's; the two flows may run concurrently.
//
// Both types are explicit service objects constructed once per application
// and safe for concurrent use; there is no package-level state.
package studio
