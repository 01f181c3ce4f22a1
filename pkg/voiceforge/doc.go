// Package voiceforge provides a Go client for the VoiceForge inference API.
//
// The API turns a reference recording into a reusable voice model and drives
// one or two models through speech or podcast synthesis. All endpoints are
// JSON over HTTP against a configurable base URL; the server is typically a
// local CPU-bound inference backend, so per-operation timeouts are generous
// and fixed.
//
// # Services
//
//   - client.Audio: reference sample upload and retrieval
//   - client.Voice: voice model cloning, listing, deletion, preview
//   - client.Generate: speech synthesis, blocking or with a progress stream
//   - client.Podcast: multi-speaker podcast synthesis
//
// # Usage
//
//	client := voiceforge.NewClient(voiceforge.WithBaseURL("http://localhost:8000"))
//
//	sample, err := client.Audio.Upload(ctx, file, "sample.wav")
//	if err != nil {
//	    return err
//	}
//	if !sample.IsValid {
//	    // The upload succeeded but the recording is unusable (too short,
//	    // too noisy). Branch on IsValid, not on the error.
//	}
//
//	model, err := client.Voice.Clone(ctx, &voiceforge.CloneRequest{
//	    AudioID: sample.ID,
//	    Name:    "Ada",
//	})
//
// Streaming generation yields progress events as they arrive:
//
//	for ev, err := range client.Generate.SpeechStream(ctx, req) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%3d%% %s\n", ev.Progress, ev.Message)
//	}
//
// The stream is best effort: a mid-stream disconnect ends iteration without
// an error and the last observed state stands. The client never retries on
// its own; failures surface to the caller.
package voiceforge
