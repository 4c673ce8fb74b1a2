package models

import "strings"

type BlockKind string

const (
	GapFill        BlockKind = "gap_fill"
	Matching       BlockKind = "matching"
	MultipleChoice BlockKind = "multiple_choice"
	Ordering       BlockKind = "ordering"
)

// kindTokens maps each kind to the normalized type tags it accepts. Content
// documents spell the same kind many ways ("gap-fill", "GapFill", "fillBlank"),
// so matching is done on hyphen/underscore-stripped lowercase tokens.
var kindTokens = map[BlockKind][]string{
	GapFill:        {"gapfill", "fillblank", "fillintheblank", "fillgap"},
	Matching:       {"matching", "matchpairs"},
	MultipleChoice: {"multiplechoice", "singlechoice", "multichoice"},
	Ordering:       {"ordering", "sequencing", "sortitems"},
}

// NormalizeTypeTag strips hyphens, underscores and spaces and lowercases the
// tag so that "multiple-choice", "MultipleChoice" and "multiple_choice" all
// compare equal.
func NormalizeTypeTag(tag string) string {
	replacer := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(tag)))
}

// MatchesKind reports whether a raw type tag refers to the given kind.
// Comparison is containment in either direction so that both long-form tags
// ("interactive-gap-fill-block") and short ones ("gapfill") resolve.
func MatchesKind(tag string, kind BlockKind) bool {
	normalized := NormalizeTypeTag(tag)
	if normalized == "" {
		return false
	}
	for _, token := range kindTokens[kind] {
		if strings.Contains(normalized, token) || strings.Contains(token, normalized) {
			return true
		}
	}
	return false
}

// ParseBlockKind resolves a free-form kind tag to a BlockKind.
func ParseBlockKind(tag string) (BlockKind, bool) {
	for _, kind := range []BlockKind{GapFill, Matching, MultipleChoice, Ordering} {
		if MatchesKind(tag, kind) {
			return kind, true
		}
	}
	return "", false
}

// BlockHeader carries the fields shared by every exercise block kind.
type BlockHeader struct {
	ID          string  `json:"id"`
	Order       int     `json:"order"`
	Instruction string  `json:"instruction"`
	Points      float64 `json:"points"`
	IsRequired  bool    `json:"is_required"`
}

// ===== GAP FILL =====

type GapAnswerType string

const (
	GapAnswerExact   GapAnswerType = "exact"
	GapAnswerKeyword GapAnswerType = "keyword"
	GapAnswerSimilar GapAnswerType = "similar"
)

type BlankOption struct {
	ID          string `json:"id"`
	Value       string `json:"value"`
	DisplayText string `json:"display_text"`
}

type Blank struct {
	Identifier           string        `json:"identifier"`
	Index                int           `json:"index"`
	CorrectAnswer        string        `json:"correct_answer"`
	AlternativeAnswers   []string      `json:"alternative_answers"`
	CorrectOptionID      string        `json:"correct_option_id"`
	AlternativeOptionIDs []string      `json:"alternative_option_ids"`
	Options              []BlankOption `json:"options"`
	AllowManualInput     bool          `json:"allow_manual_input"`
	AllowGlobalOptions   bool          `json:"allow_global_options"`
	AllowBlankOptions    bool          `json:"allow_blank_options"`
}

type GapFillBlock struct {
	BlockHeader
	Blanks        []Blank       `json:"blanks"`
	GlobalOptions []BlankOption `json:"global_options"`
	AnswerType    GapAnswerType `json:"answer_type"`
	CaseSensitive bool          `json:"case_sensitive"`
}

// ===== MATCHING =====

type MatchSideType string

const (
	MatchSideText  MatchSideType = "text"
	MatchSideImage MatchSideType = "image"
	MatchSideAudio MatchSideType = "audio"
)

type MatchSide struct {
	Type     MatchSideType `json:"type"`
	Text     string        `json:"text,omitempty"`
	FileID   string        `json:"file_id,omitempty"`
	FileURL  string        `json:"file_url,omitempty"`
	MimeType string        `json:"mime_type,omitempty"`
	Duration float64       `json:"duration,omitempty"`
}

// MatchItem pairs a left side with a right side. The item id is also the
// correct pair id: left N matches right N, referenced by the shared id.
type MatchItem struct {
	ID    string    `json:"id"`
	Left  MatchSide `json:"left"`
	Right MatchSide `json:"right"`
}

type MatchingBlock struct {
	BlockHeader
	Items []MatchItem `json:"items"`
}

// ===== MULTIPLE CHOICE =====

type ChoiceAnswerType string

const (
	ChoiceSingle   ChoiceAnswerType = "single"
	ChoiceMultiple ChoiceAnswerType = "multiple"
)

type ChoiceOption struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type MultipleChoiceBlock struct {
	BlockHeader
	Question       string           `json:"question"`
	Options        []ChoiceOption   `json:"options"`
	AnswerType     ChoiceAnswerType `json:"answer_type"`
	CorrectIndices []int            `json:"correct_indices"` // sorted ascending
}

// ===== ORDERING =====

type OrderItem struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Value   string `json:"value,omitempty"`
	FileID  string `json:"file_id,omitempty"`
	Include bool   `json:"include"`
}

type OrderingBlock struct {
	BlockHeader
	Items        []OrderItem `json:"items"`
	CorrectOrder []string    `json:"correct_order"`
	Direction    string      `json:"direction,omitempty"` // display-only
	Alignment    string      `json:"alignment,omitempty"` // display-only
}

// EffectiveOrder returns the declared correct order, falling back to the
// declared item order (excluded items skipped) when no explicit order is set.
// Ids named in CorrectOrder but absent from Items are dropped.
func (b *OrderingBlock) EffectiveOrder() []string {
	known := make(map[string]bool, len(b.Items))
	for _, item := range b.Items {
		known[item.ID] = true
	}

	if len(b.CorrectOrder) > 0 {
		order := make([]string, 0, len(b.CorrectOrder))
		for _, id := range b.CorrectOrder {
			if known[id] {
				order = append(order, id)
			}
		}
		return order
	}

	order := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		if item.Include {
			order = append(order, item.ID)
		}
	}
	return order
}
