package schedule

import "encoding/json"

// The extract helpers are total: any shape maps to a string, with ""
// for anything unusable. AniList nests these fields, but clients also
// send pre-flattened strings, so both forms are accepted.

// ExtractTitle returns the display title for a loosely-shaped title
// value: for the object form the first present of english then romaji,
// for a plain string the string itself, otherwise "".
func ExtractTitle(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var obj struct {
		English string `json:"english"`
		Romaji  string `json:"romaji"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.English != "" {
			return obj.English
		}
		return obj.Romaji
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// ExtractCoverImage returns the cover URL, preferring extraLarge, then
// large, then medium from the object form; a plain string passes
// through.
func ExtractCoverImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var obj struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
		Medium     string `json:"medium"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.ExtraLarge != "" {
			return obj.ExtraLarge
		}
		if obj.Large != "" {
			return obj.Large
		}
		return obj.Medium
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
