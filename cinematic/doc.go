// Package cinematic plays cinematic sequences: JSON documents of named tracks
// whose keyframes set scene object positions and angles at fixed offsets
// from the moment the sequence starts.
//
// A Player fans every keyframe out into a one-shot action on a Timers queue
// and keeps a table of which sequence names are still running. Nothing
// happens in the background: the host advances the queue from its frame
// loop with Player.Update, so keyframes fire on the tick that reaches their
// deadline and in a deterministic order.
package cinematic
