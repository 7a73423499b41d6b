package promptgen

import "github.com/invopop/jsonschema"

// SubjectTag marks the uploaded reference image as the subject in
// image-reference mode.
const SubjectTag = "[用户图1]"

const (
	FieldEnglishPrompt        = "englishPrompt"
	FieldChineseTranslation   = "chineseTranslation"
	FieldNegativePrompt       = "negativePrompt"
	FieldReasoning            = "reasoning"
	FieldSuggestedAspectRatio = "suggestedAspectRatio"
)

// SchemaField is one required string property of the model output.
type SchemaField struct {
	Name        string
	Description string
}

// OutputSchema declares the flat object the model must return. Every field
// is a required string; order is preserved when rendered.
type OutputSchema struct {
	Title  string
	Fields []SchemaField
}

func (s OutputSchema) Required() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// JSONSchema renders the descriptor as a draft 2020-12 object schema.
func (s OutputSchema) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, f := range s.Fields {
		props.Set(f.Name, &jsonschema.Schema{
			Type:        "string",
			Description: f.Description,
		})
	}
	return &jsonschema.Schema{
		Title:                s.Title,
		Type:                 "object",
		Properties:           props,
		Required:             s.Required(),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func promptSchema(mode Mode) OutputSchema {
	english := "The highly detailed, optimized English prompt for text-to-image AI. Includes subject, medium, style, lighting, color palette, and quality boosters (e.g., 'masterpiece, best quality, 8k')."
	if mode == ModeImageReference {
		english = "The optimized English prompt for image-to-image AI. MUST start with " + SubjectTag + " and describe only the action, attire, expression and scene of " + SubjectTag + ", plus style, lighting and quality boosters. Never describe the subject's own appearance."
	}

	return OutputSchema{
		Title: "PromptResponse",
		Fields: []SchemaField{
			{Name: FieldEnglishPrompt, Description: english},
			{Name: FieldChineseTranslation, Description: "A beautiful and poetic Chinese translation of the generated prompt concept."},
			{Name: FieldNegativePrompt, Description: "A standard negative prompt to avoid bad quality (e.g., 'low quality, ugly, deformed')."},
			{Name: FieldReasoning, Description: "Brief explanation of why these keywords were chosen to match the user's intent."},
			{Name: FieldSuggestedAspectRatio, Description: "Suggested aspect ratio (e.g., '1:1', '16:9') based on the subject matter."},
		},
	}
}
