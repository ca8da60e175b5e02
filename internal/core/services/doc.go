// Package services implements the driving port interfaces.
// Services contain the synchronisation logic (diff, pipeline, reconcile,
// watermark commit) and the run controller that serialises passes.
//
// Services are pure Go with no CGO and depend only on ports.
package services
