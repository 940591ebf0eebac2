package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldBytes  = "bytes"
	FieldBackup = "backup"

	// Configuration fields.
	FieldFlavor       = "flavor"
	FieldConfigFiles  = "config_files"
	FieldHistoryLimit = "history_limit"

	// Command fields.
	FieldCommand  = "command"
	FieldAction   = "action"
	FieldVersion  = "version"
	FieldCursor   = "cursor"
	FieldBlock    = "block_type"
	FieldDuration = "duration"
	FieldChanged  = "changed"

	// Document fields.
	FieldBlocks = "blocks"
	FieldIssues = "issues"
	FieldSteps  = "steps"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
