// Package timezone pins "now" and calendar days to the application timezone
// (APP_TIMEZONE, e.g. "America/Sao_Paulo"), loaded when the package is imported.
//
// Services take a Clock so tests can freeze the instant:
//
//	clock := timezone.NewClock()
//	today := timezone.Day(clock.Now()).Format(time.DateOnly)
package timezone
