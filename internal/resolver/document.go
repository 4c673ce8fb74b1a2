// Package resolver extracts typed exercise blocks out of loosely-structured,
// versioned content documents. Each kind resolves through an ordered chain of
// structural probes: the current blocks[] container format first, then the
// legacy per-kind top-level arrays, then the legacy single-exercise document.
// A probe that finds nothing (or trips over malformed structure) just yields
// to the next one; only when the whole chain is exhausted does resolution
// report ErrBlockNotFound.
package resolver

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// ErrBlockNotFound is returned when the requested block cannot be located in
// the content document, including when the document is not valid JSON at all.
var ErrBlockNotFound = errors.New("exercise block not found in content document")

// legacyBlockIDs are the block ids that refer to a whole-document legacy
// single-exercise shape (pre-multi-block schema).
var legacyBlockIDs = map[string]bool{"main": true, "legacy": true}

type jsonObject = map[string]any

func parseDocument(doc []byte) (jsonObject, bool) {
	if len(doc) == 0 {
		return nil, false
	}
	var root jsonObject
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, false
	}
	return root, true
}

// runProbes walks a probe chain, shielding the caller from panics inside a
// single probe: a probe that blows up on unexpected structure counts as
// "found nothing" and the chain continues.
func runProbes[T any](probes []func(jsonObject, string) (*T, bool), root jsonObject, blockID string) (*T, error) {
	for _, probe := range probes {
		if block, ok := safeProbe(probe, root, blockID); ok {
			return block, nil
		}
	}
	return nil, ErrBlockNotFound
}

func safeProbe[T any](probe func(jsonObject, string) (*T, bool), root jsonObject, blockID string) (block *T, ok bool) {
	defer func() {
		if recover() != nil {
			block, ok = nil, false
		}
	}()
	return probe(root, blockID)
}

// blockEntries returns the data objects of every blocks[] entry whose type
// tag matches the kind and whose id matches blockID (case-insensitive). When
// an entry has no nested "data" object the entry itself is the data.
func blockEntries(root jsonObject, blockID string, kind models.BlockKind) []jsonObject {
	items, ok := getArray(root, "blocks")
	if !ok {
		return nil
	}
	var out []jsonObject
	for _, raw := range items {
		entry, ok := raw.(jsonObject)
		if !ok {
			continue
		}
		tag, _ := getString(entry, "type", "blockType", "kind")
		if !models.MatchesKind(tag, kind) {
			continue
		}
		id, _ := getString(entry, "id", "blockId")
		if !strings.EqualFold(strings.TrimSpace(id), strings.TrimSpace(blockID)) {
			continue
		}
		data, ok := getObject(entry, "data", "content")
		if !ok {
			data = entry
		} else {
			// Header fields may sit on the entry itself; carry them into the
			// data object when it omits them.
			data = carryHeaderFields(entry, data)
		}
		out = append(out, data)
	}
	return out
}

// legacyArrayEntries returns entries of a kind-specific top-level array
// (e.g. "multipleChoiceBlocks") whose id matches blockID.
func legacyArrayEntries(root jsonObject, blockID string, keys ...string) []jsonObject {
	for _, key := range keys {
		items, ok := getArray(root, key)
		if !ok {
			continue
		}
		var out []jsonObject
		for _, raw := range items {
			entry, ok := raw.(jsonObject)
			if !ok {
				continue
			}
			id, _ := getString(entry, "id", "blockId")
			if strings.EqualFold(strings.TrimSpace(id), strings.TrimSpace(blockID)) {
				out = append(out, entry)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// headerCarryover lists the shared header fields (with their alternate
// spellings) that a blocks[] entry may declare next to its data object.
var headerCarryover = [][]string{
	{"id", "blockId"},
	{"points", "score", "point"},
	{"order", "position", "sortOrder"},
	{"instruction", "instructions", "title", "prompt"},
	{"isRequired", "required"},
}

// carryHeaderFields copies entry-level header fields into a nested data
// object when the data object omits them. A field present at both levels
// keeps the data-level value.
func carryHeaderFields(entry, data jsonObject) jsonObject {
	for _, aliases := range headerCarryover {
		if _, exists := lookup(data, aliases...); exists {
			continue
		}
		if v, ok := lookup(entry, aliases...); ok {
			data = cloneWith(data, aliases[0], v)
		}
	}
	return data
}

func cloneWith(obj jsonObject, key string, value any) jsonObject {
	out := make(jsonObject, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	out[key] = value
	return out
}

// ===== FIELD ACCESS =====
//
// All lookups are case-insensitive on the key and accept a list of alternate
// spellings, first hit wins.

func lookup(obj jsonObject, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			return v, true
		}
	}
	for _, key := range keys {
		for k, v := range obj {
			if strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return nil, false
}

func getString(obj jsonObject, keys ...string) (string, bool) {
	v, ok := lookup(obj, keys...)
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func getBool(obj jsonObject, keys ...string) (bool, bool) {
	v, ok := lookup(obj, keys...)
	if !ok || v == nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	case float64:
		return t != 0, true
	}
	return false, false
}

// getFloat accepts numeric fields declared as JSON numbers or as numeric
// strings ("2", "2.5").
func getFloat(obj jsonObject, keys ...string) (float64, bool) {
	v, ok := lookup(obj, keys...)
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func getInt(obj jsonObject, keys ...string) (int, bool) {
	f, ok := getFloat(obj, keys...)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func getArray(obj jsonObject, keys ...string) ([]any, bool) {
	v, ok := lookup(obj, keys...)
	if !ok || v == nil {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

func getObject(obj jsonObject, keys ...string) (jsonObject, bool) {
	v, ok := lookup(obj, keys...)
	if !ok || v == nil {
		return nil, false
	}
	m, ok := v.(jsonObject)
	return m, ok
}

func getStringSlice(obj jsonObject, keys ...string) []string {
	arr, ok := getArray(obj, keys...)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, raw := range arr {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// mapHeader fills the shared block fields from a data object. Points stay as
// declared here; kind-specific defaulting happens after the rest of the block
// is mapped, once the item count is known.
func mapHeader(data jsonObject, blockID string) models.BlockHeader {
	header := models.BlockHeader{IsRequired: true}
	if id, ok := getString(data, "id", "blockId"); ok && id != "" {
		header.ID = id
	} else {
		header.ID = blockID
	}
	header.Order, _ = getInt(data, "order", "position", "sortOrder")
	header.Instruction, _ = getString(data, "instruction", "instructions", "title", "prompt")
	header.Points, _ = getFloat(data, "points", "score", "point")
	if required, ok := getBool(data, "isRequired", "required"); ok {
		header.IsRequired = required
	}
	return header
}

// defaultPoints applies the defaulting policy: a declared positive value
// wins; an explicit zero means "unscored" and is kept; anything else
// (missing or negative) falls back to the computed default.
func defaultPoints(declared float64, explicitZero bool, fallback float64) float64 {
	if declared > 0 {
		return declared
	}
	if declared == 0 && explicitZero {
		return 0
	}
	if fallback < 1 {
		fallback = 1
	}
	return fallback
}

// pointsDeclaration reports the declared points and whether a literal zero
// was present (as opposed to the field being absent).
func pointsDeclaration(data jsonObject) (float64, bool) {
	value, ok := getFloat(data, "points", "score", "point")
	if !ok {
		return -1, false
	}
	return value, value == 0
}
