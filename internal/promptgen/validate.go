package promptgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PromptResponse is the structured result rendered back to the user.
type PromptResponse struct {
	EnglishPrompt        string `json:"englishPrompt"`
	ChineseTranslation   string `json:"chineseTranslation"`
	NegativePrompt       string `json:"negativePrompt"`
	Reasoning            string `json:"reasoning"`
	SuggestedAspectRatio string `json:"suggestedAspectRatio"`
}

// Validate decodes raw model output. All five fields must be present as JSON
// strings. In image-reference mode a missing SubjectTag prefix is patched by
// prepending it; this is a best-effort repair of the model's output.
func Validate(raw string, mode Mode) (PromptResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return PromptResponse{}, fmt.Errorf("%w: empty response", ErrDecode)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return PromptResponse{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if obj == nil {
		return PromptResponse{}, fmt.Errorf("%w: not an object", ErrDecode)
	}

	var out PromptResponse
	targets := []struct {
		name string
		dst  *string
	}{
		{FieldEnglishPrompt, &out.EnglishPrompt},
		{FieldChineseTranslation, &out.ChineseTranslation},
		{FieldNegativePrompt, &out.NegativePrompt},
		{FieldReasoning, &out.Reasoning},
		{FieldSuggestedAspectRatio, &out.SuggestedAspectRatio},
	}
	for _, t := range targets {
		v, ok := obj[t.name]
		if !ok {
			return PromptResponse{}, fmt.Errorf("%w: missing field %q", ErrDecode, t.name)
		}
		if err := decodeString(v, t.dst); err != nil {
			return PromptResponse{}, fmt.Errorf("%w: field %q: %v", ErrDecode, t.name, err)
		}
	}

	if mode == ModeImageReference {
		out.EnglishPrompt = EnsureSubjectTag(out.EnglishPrompt)
	}
	return out, nil
}

// EnsureSubjectTag prepends SubjectTag and a space unless s already starts
// with the tag. A tag elsewhere in s does not count.
func EnsureSubjectTag(s string) string {
	if strings.HasPrefix(s, SubjectTag) {
		return s
	}
	return SubjectTag + " " + s
}

func decodeString(v json.RawMessage, dst *string) error {
	trimmed := strings.TrimSpace(string(v))
	if !strings.HasPrefix(trimmed, `"`) {
		return fmt.Errorf("expected string, got %s", kindOf(trimmed))
	}
	return json.Unmarshal(v, dst)
}

func kindOf(v string) string {
	switch {
	case v == "null":
		return "null"
	case strings.HasPrefix(v, "{"):
		return "object"
	case strings.HasPrefix(v, "["):
		return "array"
	case v == "true" || v == "false":
		return "boolean"
	default:
		return "number"
	}
}
