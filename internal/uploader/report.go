package uploader

// UploadItem pairs a local file with the relative path that identifies it in
// the object store. Immutable once constructed.
type UploadItem struct {
	LocalPath    string
	RelativePath string
}

// UploadOutcome records the result of one upload attempt. A nil Err means
// the item was uploaded.
type UploadOutcome struct {
	Item UploadItem
	Err  error
}

// BatchResult aggregates the outcomes of one batch invocation. Failures
// preserves the encounter order of failed items.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Failures  []UploadItem
}

// Ok reports whether every item in the batch succeeded.
func (r BatchResult) Ok() bool {
	return r.Failed == 0
}

// Summarize folds a sequence of outcomes into a BatchResult.
func Summarize(outcomes []UploadOutcome) BatchResult {
	result := BatchResult{Total: len(outcomes)}
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			result.Succeeded++
			continue
		}
		result.Failed++
		result.Failures = append(result.Failures, outcome.Item)
	}
	return result
}
