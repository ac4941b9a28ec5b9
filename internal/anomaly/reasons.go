package anomaly

import "github.com/spendwx/spendwx/internal/model"

const reasonFirstSeen = "first time seeing spend like this, nothing to compare against yet"

// reasonKey indexes the explanation table. Keeping reasons in a fixed table
// keyed by what the detector actually decided makes the text deterministic
// and enumerable in tests.
type reasonKey struct {
	severity  model.Severity
	fallback  bool // compared against the category, not the merchant
	escalated bool // severity raised by remaining-budget pressure
	sparse    bool // no baseline existed at all
}

var reasonTable = map[reasonKey]string{
	{model.SeverityLow, false, false, true}:  reasonFirstSeen,
	{model.SeverityLow, true, false, true}:   reasonFirstSeen,
	{model.SeverityMedium, false, true, true}: "new spend that would take a big bite out of what's left in this budget",
	{model.SeverityMedium, true, true, true}:  "new spend that would take a big bite out of what's left in this budget",

	{model.SeverityLow, false, false, false}: "in line with your usual spend at this merchant",
	{model.SeverityLow, true, false, false}:  "in line with your usual spend in this category",

	{model.SeverityMedium, false, false, false}: "noticeably above your usual spend at this merchant",
	{model.SeverityMedium, true, false, false}:  "noticeably above your usual spend in this category",
	{model.SeverityMedium, false, true, false}:  "would use up a large share of what's left in this budget",
	{model.SeverityMedium, true, true, false}:   "would use up a large share of what's left in this budget",

	{model.SeverityHigh, false, false, false}: "far above your usual spend at this merchant",
	{model.SeverityHigh, true, false, false}:  "far above your usual spend in this category",
	{model.SeverityHigh, false, true, false}:  "far above your usual spend and a large share of what's left in this budget",
	{model.SeverityHigh, true, true, false}:   "far above typical category spend and a large share of what's left in this budget",
}

func lookupReason(severity model.Severity, fallback, escalated, sparse bool) string {
	if r, ok := reasonTable[reasonKey{severity, fallback, escalated, sparse}]; ok {
		return r
	}
	return reasonFirstSeen
}
