package resolver

import (
	"fmt"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// ResolveMatching locates the matching block with the given id inside a
// content document and maps it to its canonical shape.
func ResolveMatching(doc []byte, blockID string) (*models.MatchingBlock, error) {
	root, ok := parseDocument(doc)
	if !ok {
		return nil, ErrBlockNotFound
	}
	return runProbes([]func(jsonObject, string) (*models.MatchingBlock, bool){
		probeMatchingBlocks,
		probeMatchingLegacyArray,
		probeMatchingLegacyDocument,
	}, root, blockID)
}

func probeMatchingBlocks(root jsonObject, blockID string) (*models.MatchingBlock, bool) {
	for _, data := range blockEntries(root, blockID, models.Matching) {
		if block, ok := mapMatching(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeMatchingLegacyArray(root jsonObject, blockID string) (*models.MatchingBlock, bool) {
	for _, data := range legacyArrayEntries(root, blockID, "matchingBlocks", "matchBlocks") {
		if block, ok := mapMatching(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeMatchingLegacyDocument(root jsonObject, blockID string) (*models.MatchingBlock, bool) {
	if !legacyBlockIDs[blockID] {
		return nil, false
	}
	if _, ok := getArray(root, "items", "pairs", "matchItems"); !ok {
		return nil, false
	}
	return mapMatching(root, blockID)
}

func mapMatching(data jsonObject, blockID string) (*models.MatchingBlock, bool) {
	block := &models.MatchingBlock{BlockHeader: mapHeader(data, blockID)}

	rawItems, ok := getArray(data, "items", "pairs", "matchItems")
	if !ok {
		return nil, false
	}
	for i, raw := range rawItems {
		obj, ok := raw.(jsonObject)
		if !ok {
			continue
		}
		item := models.MatchItem{}
		item.ID, _ = getString(obj, "id", "itemId", "pairId")
		if item.ID == "" {
			item.ID = fmt.Sprintf("item-%d", i)
		}
		item.Left = mapMatchSide(obj, "left")
		item.Right = mapMatchSide(obj, "right")
		block.Items = append(block.Items, item)
	}
	// An empty items list is still a resolvable (degenerate) block; the
	// evaluator owns the vacuous-correct rule.

	declared, explicitZero := pointsDeclaration(data)
	block.Points = defaultPoints(declared, explicitZero, float64(len(block.Items)))
	return block, true
}

// mapMatchSide reads one side of a match item, accepting both nested objects
// ("left": {...}) and flattened fields ("leftText", "leftType", "leftFileId").
func mapMatchSide(obj jsonObject, prefix string) models.MatchSide {
	side := models.MatchSide{Type: models.MatchSideText}
	source := obj
	if nested, ok := getObject(obj, prefix, prefix+"Side"); ok {
		source = nested
		prefix = ""
	}
	key := func(suffix string) []string {
		if prefix == "" {
			return []string{suffix}
		}
		return []string{prefix + capitalize(suffix), suffix}
	}
	if tag, ok := getString(source, key("type")...); ok {
		switch models.NormalizeTypeTag(tag) {
		case "image", "picture":
			side.Type = models.MatchSideImage
		case "audio", "sound", "voice":
			side.Type = models.MatchSideAudio
		}
	}
	side.Text, _ = getString(source, append(key("text"), key("value")[0], key("content")[0])...)
	side.FileID, _ = getString(source, key("fileId")...)
	side.FileURL, _ = getString(source, append(key("fileUrl"), key("url")[0])...)
	side.MimeType, _ = getString(source, key("mimeType")...)
	side.Duration, _ = getFloat(source, key("duration")...)
	return side
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
