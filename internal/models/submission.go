package models

// Canonical submissions, one shape per block kind. These are built once per
// validation call from whatever the client sent and discarded afterwards.

// BlankResponse is one answered gap in a gap-fill submission. Either Value
// (free text) or OptionID (a picked option) is set; both empty means the
// blank was left unanswered.
type BlankResponse struct {
	BlankID  string `json:"blank_id"`
	Index    int    `json:"index"`
	Value    string `json:"value,omitempty"`
	OptionID string `json:"option_id,omitempty"`
}

// MatchResponse is one submitted pairing in a matching submission.
type MatchResponse struct {
	LeftItemID     string `json:"left_item_id"`
	SelectedPairID string `json:"selected_pair_id"`
	OrderIndex     int    `json:"order_index"`
}

type GapFillSubmission []BlankResponse

type MatchingSubmission []MatchResponse

// ChoiceSubmission is the set of selected option indices, deduplicated and
// sorted ascending.
type ChoiceSubmission []int

// OrderingSubmission is the submitted item id sequence, in order.
type OrderingSubmission []string
