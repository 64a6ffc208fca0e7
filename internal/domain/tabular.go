package domain

// CleaningOptions toggles the spreadsheet cleaning steps. Both default to on.
type CleaningOptions struct {
	RemoveDuplicates bool
	CleanText        bool
}

// DefaultCleaningOptions returns the options used when the caller sends none.
func DefaultCleaningOptions() CleaningOptions {
	return CleaningOptions{RemoveDuplicates: true, CleanText: true}
}

// CleanedSheet holds the cleaned spreadsheet serialized back to CSV text.
type CleanedSheet struct {
	Output string `json:"output"`
}
