package errors

// Constructors for the error taxonomy used across the build pipeline.
// Keeping them here means call sites never hand-assemble categories.

// ConfigError reports a missing or invalid configuration value. Fatal: the
// process must not serve requests with an incomplete configuration.
func ConfigError(message string) *BuildError {
	return New(CategoryConfig, SeverityFatal, message)
}

// InputError reports a malformed or schema-invalid request body.
func InputError(message string) *BuildError {
	return New(CategoryInput, SeverityWarning, message)
}

// WrapInput wraps a parser error as an input classification, preserving the
// parser's message for the response body.
func WrapInput(err error, message string) *BuildError {
	return Wrap(err, CategoryInput, SeverityWarning, message)
}

// WorkspaceError reports a filesystem seeding, creation, or write failure.
func WorkspaceError(message string) *BuildError {
	return New(CategoryWorkspace, SeverityError, message)
}

// WrapWorkspace wraps a filesystem error from workspace handling.
func WrapWorkspace(err error, message string) *BuildError {
	return Wrap(err, CategoryWorkspace, SeverityError, message)
}

// BuildToolError reports a nonzero exit from an external build tool. The
// captured stderr is carried both in the message (so HTTP bodies contain the
// tool diagnostics) and as a context field.
func BuildToolError(tool string, exitCode int, stderr string) *BuildError {
	return New(CategoryBuildTool, SeverityError, tool+" build failed: "+stderr).
		WithContext("tool", tool).
		WithContext("exit_code", exitCode).
		WithContext("stderr", stderr)
}

// WrapBuildTool wraps a failure to even start an external build tool.
func WrapBuildTool(err error, tool string) *BuildError {
	return Wrap(err, CategoryBuildTool, SeverityError, "failed to execute "+tool).
		WithContext("tool", tool)
}

// WrapPublish wraps an object storage upload failure.
func WrapPublish(err error, message string) *BuildError {
	return Wrap(err, CategoryPublish, SeverityError, message)
}

// WrapCleanup wraps a workspace removal failure. Cleanup errors are logged
// only and must never change the pipeline's result.
func WrapCleanup(err error, message string) *BuildError {
	return Wrap(err, CategoryCleanup, SeverityWarning, message)
}

// WrapInternal wraps an unexpected runtime failure.
func WrapInternal(err error, message string) *BuildError {
	return Wrap(err, CategoryInternal, SeverityError, message)
}
