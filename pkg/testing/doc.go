// Package testing provides test doubles for caret scenes and widgets.
//
// [FakeClock] drives animation schedulers deterministically:
//
//	clock := drifttest.NewFakeClock()
//	scheduler := animation.NewScheduler(clock)
//	clock.Advance(500 * time.Millisecond)
//	scheduler.Step()
//
// [RecordingBridge] stands in for native code. It records every platform
// call and can echo text written to a hidden input field back as a native
// change event, the way mobile browsers do:
//
//	bridge := drifttest.NewRecordingBridge(platform.Capabilities{Touch: true})
//	bridge.EchoSetText = true
//	sc := scene.New(scene.Options{Bridge: bridge})
//
// [CaptureLayer] snapshots a rendering layer for golden-file comparison.
// Update golden files with:
//
//	CARET_UPDATE_SNAPSHOTS=1 go test ./...
package testing
