// Package timezone provides timezone utilities for the application.
//
// Visit times, cancellation cutoffs and registration-number date prefixes
// are all evaluated in the application timezone, so every time the service
// compares against wall-clock time must come from this package.
//
//	now := timezone.Now()                    // current time in app timezone
//	appTime := timezone.ToAppTime(someTime)  // convert any time to app timezone
//	formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//	t, err := timezone.Parse("2006-01-02", "2026-01-01")
//
// The timezone is configured via the APP_TIMEZONE environment variable and
// is initialized when the package is imported. Use standard IANA timezone
// database names ("UTC", "Asia/Shanghai", "Europe/London").
package timezone
