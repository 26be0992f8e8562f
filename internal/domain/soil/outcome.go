package soil

// AdvisoryOutcome is the finalized advice for one analyze call. Persistence
// and response building treat live and fallback advice uniformly.
type AdvisoryOutcome struct {
	Text   string
	Source Source
}

// Resolve picks between the advisory service result and the fallback text.
// Empty advice counts as a failure: the endpoint must never answer with an
// empty advisory body.
func Resolve(advice string, err error, fallback string) AdvisoryOutcome {
	if err != nil || advice == "" {
		return AdvisoryOutcome{Text: fallback, Source: SourceFallback}
	}
	return AdvisoryOutcome{Text: advice, Source: SourceLive}
}
