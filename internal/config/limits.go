package config

const (
	// MaxImageNameLength is the maximum length for image filenames.
	// Limited to 255 to fit common filesystem name limits.
	MaxImageNameLength = 255

	// MaxNotesLength is the maximum length for the notes annotation.
	MaxNotesLength = 10000

	// MaxPromptLength is the maximum length for the prompt annotation.
	// Generation prompts can be long but are bounded to keep sidecars
	// small.
	MaxPromptLength = 10000
)
