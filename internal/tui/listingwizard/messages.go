package listingwizard

import (
	"github.com/rentverse/lettr/internal/api"
	"github.com/rentverse/lettr/internal/listing"
)

// StepSubmittedMsg is sent when a step component validates its inputs and
// hands the edits back to the wizard for merging and navigation.
type StepSubmittedMsg struct {
	Patch listing.Patch
}

// PriceFetchedMsg is sent when the price recommendation request completes.
// The client degrades to a local heuristic on failure, so there is always a
// recommendation to show.
type PriceFetchedMsg struct {
	Rec api.PriceRecommendation
}

// SubmitResultMsg is sent when the listing submission completes.
type SubmitResultMsg struct {
	Record *listing.PropertyRecord
	Err    error
}

// RetrySubmitMsg is sent when the user chooses to retry a failed submission.
type RetrySubmitMsg struct{}

// TabExitForwardMsg is sent when Tab is pressed on a step's last input,
// moving focus to the wizard's button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on a step's first
// input, moving focus to the button bar from the end.
type TabExitBackwardMsg struct{}
