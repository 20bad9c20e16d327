// Package errors provides error handling conventions for the agx CLI.
//
// This package re-exports the cockroachdb/errors constructors used
// throughout the codebase, defines an ExitError type for CLI exit code
// handling, and exit code constants following standard Unix conventions.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := agxerrors.NewUserError(profile.ErrProfileNotFound, "Run: agx list")
//	var exitErr *agxerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
