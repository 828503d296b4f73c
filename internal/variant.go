package internal

import (
	"bytes"
	"encoding/json"
)

// SchemaVariant identifies which of the known on-disk record shapes a raw
// record uses. The set is closed; records matching none are Unparseable.
type SchemaVariant int

const (
	VariantUnparseable SchemaVariant = iota
	VariantNestedCollection
	VariantPairedTurn
	VariantFlatTurnList
)

func (v SchemaVariant) String() string {
	switch v {
	case VariantNestedCollection:
		return "nested-collection"
	case VariantPairedTurn:
		return "paired-turn"
	case VariantFlatTurnList:
		return "flat-turn-list"
	default:
		return "unparseable"
	}
}

type nestedCollectionProbe struct {
	Data []json.RawMessage `json:"data"`
}

// DetectVariant classifies a raw record by structural field inspection only.
// Checks run in a fixed order (NestedCollection, PairedTurn, FlatTurnList)
// because a record can partially satisfy more than one shape; the first
// structural match wins and the ordering is load-bearing.
func DetectVariant(content []byte) SchemaVariant {
	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if len(trimmed) == 0 {
		return VariantUnparseable
	}

	if trimmed[0] == '[' {
		var collections []nestedCollectionProbe
		if err := json.Unmarshal(content, &collections); err != nil {
			return VariantUnparseable
		}
		if len(collections) > 0 && collections[0].Data != nil {
			return VariantNestedCollection
		}
		return VariantUnparseable
	}

	var keyed struct {
		History []json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(content, &keyed); err != nil || keyed.History == nil {
		return VariantUnparseable
	}

	// An empty history carries no entry to discriminate on; it matches the
	// first keyed shape in the priority order.
	if len(keyed.History) == 0 {
		return VariantPairedTurn
	}

	first := bytes.TrimLeft(keyed.History[0], " \t\r\n")
	if len(first) == 0 {
		return VariantUnparseable
	}
	switch first[0] {
	case '{':
		return VariantPairedTurn
	case '[':
		return VariantFlatTurnList
	}
	return VariantUnparseable
}
