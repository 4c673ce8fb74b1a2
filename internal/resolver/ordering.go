package resolver

import (
	"fmt"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// ResolveOrdering locates the ordering block with the given id inside a
// content document and maps it to its canonical shape.
func ResolveOrdering(doc []byte, blockID string) (*models.OrderingBlock, error) {
	root, ok := parseDocument(doc)
	if !ok {
		return nil, ErrBlockNotFound
	}
	return runProbes([]func(jsonObject, string) (*models.OrderingBlock, bool){
		probeOrderingBlocks,
		probeOrderingLegacyArray,
		probeOrderingLegacyDocument,
	}, root, blockID)
}

func probeOrderingBlocks(root jsonObject, blockID string) (*models.OrderingBlock, bool) {
	for _, data := range blockEntries(root, blockID, models.Ordering) {
		if block, ok := mapOrdering(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeOrderingLegacyArray(root jsonObject, blockID string) (*models.OrderingBlock, bool) {
	for _, data := range legacyArrayEntries(root, blockID, "orderingBlocks", "sequencingBlocks") {
		if block, ok := mapOrdering(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeOrderingLegacyDocument(root jsonObject, blockID string) (*models.OrderingBlock, bool) {
	if !legacyBlockIDs[blockID] {
		return nil, false
	}
	if _, ok := getArray(root, "items", "orderItems", "sequence"); !ok {
		return nil, false
	}
	return mapOrdering(root, blockID)
}

func mapOrdering(data jsonObject, blockID string) (*models.OrderingBlock, bool) {
	block := &models.OrderingBlock{BlockHeader: mapHeader(data, blockID)}
	block.Direction, _ = getString(data, "direction", "orientation")
	block.Alignment, _ = getString(data, "alignment", "align")

	rawItems, ok := getArray(data, "items", "orderItems", "sequence")
	if !ok {
		return nil, false
	}
	for i, raw := range rawItems {
		item := models.OrderItem{Include: true, Type: "text"}
		switch t := raw.(type) {
		case jsonObject:
			item.ID, _ = getString(t, "id", "itemId", "key")
			if kind, ok := getString(t, "type", "itemType"); ok {
				item.Type = models.NormalizeTypeTag(kind)
			}
			item.Value, _ = getString(t, "value", "text", "content")
			item.FileID, _ = getString(t, "fileId", "fileUrl")
			if include, ok := getBool(t, "include", "included", "isIncluded"); ok {
				item.Include = include
			}
		case string:
			item.ID = t
			item.Value = t
		default:
			continue
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("item-%d", i)
		}
		block.Items = append(block.Items, item)
	}
	if len(block.Items) == 0 {
		return nil, false
	}

	block.CorrectOrder = getStringSlice(data, "correctOrder", "correctSequence", "order")

	declared, explicitZero := pointsDeclaration(data)
	block.Points = defaultPoints(declared, explicitZero, float64(len(block.Items)))
	return block, true
}
