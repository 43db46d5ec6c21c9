// Package capture runs one "capture and retrieve" operation against gphoto2.
//
// A Coordinator invokes `gphoto2 --capture-image-and-download`, classifies the
// diagnostic output and retries when the camera's USB interface is claimed by
// another process. On success it moves the newest file of each requested
// extension out of gphoto2's working directory into the destination
// directory, naming every file after a single timestamp taken when the
// operation started.
//
// Retry policy:
//   - Up to MaxAttempts invocations, RetryDelay apart
//   - Only stderr matching the USB-claim allow-list is retried
//   - Between attempts, competing processes are killed and the port is reset
//   - Any other stderr text ends the operation at once
//
// Results are never returned as errors. Callers learn what happened through
// the status sink and the (possibly empty) list of saved paths.
//
// Example usage:
//
//	runner := gphoto.NewExecRunner("gphoto2", workDir)
//	c := capture.New(runner, runner.WorkDir())
//
//	saved := c.Capture(ctx, "/home/me/captures", []string{".jpg", ".nef"},
//		func(msg string, sev status.Severity) { fmt.Println(sev, msg) },
//		nil)
package capture
