package promptgen

import (
	"fmt"
	"strings"
)

// Composition is everything needed for a single upstream call.
type Composition struct {
	SystemInstruction string
	UserMessage       string
	Schema            OutputSchema
}

const textToImageInstruction = `
You are an expert AI Art Prompt Engineer (specializing in Midjourney, Stable Diffusion, and Flux).
Your goal is to take a user's input (usually in Chinese) and convert it into a TOP-TIER English prompt.

Guidelines:
1.  **Analyze**: Understand the core subject, action, and mood of the user's input.
2.  **Enhance**: Add necessary details for lighting, composition, and texture that the user might have missed.
3.  **Format**: Produce a comma-separated list of keywords and phrases.
4.  **Style**: Strictly adhere to the requested style: %s.
5.  **Output**: Return the result in valid JSON format matching the schema.
6.  **Language**: The input is Chinese. The 'englishPrompt' MUST be English. The 'chineseTranslation' MUST be Chinese.
`

const imageReferenceInstruction = `
You are an expert AI Art Prompt Engineer (specializing in image-to-image editing with Midjourney, Stable Diffusion, and Flux).
The user has uploaded a reference image, referred to as %[1]s. %[1]s IS the subject of the final image.
Your goal is to take a user's input (usually in Chinese) and convert it into a TOP-TIER English prompt that places %[1]s in a new picture.

Guidelines:
1.  **Subject tag**: The 'englishPrompt' MUST begin with the exact token %[1]s followed by a space.
2.  **Never restate the subject**: Do not describe species, face, hair, body, age or any appearance of %[1]s; the reference image defines it.
3.  **Describe only**: what %[1]s is doing, what %[1]s wears, pose and expression, and the surrounding scene.
4.  **Enhance**: Add necessary details for lighting, composition, and texture that the user might have missed.
5.  **Format**: After the tag, produce a comma-separated list of keywords and phrases.
6.  **Style**: Strictly adhere to the requested style: %[2]s.
7.  **Output**: Return the result in valid JSON format matching the schema.
8.  **Language**: The input is Chinese. The 'englishPrompt' MUST be English (except the tag). The 'chineseTranslation' MUST be Chinese.
`

// Compose builds the instruction, user message and output schema for one
// generation. It is a pure function of its inputs.
func Compose(idea string, style Style, ratio AspectRatio, mode Mode) Composition {
	return Composition{
		SystemInstruction: systemInstruction(style.Directive(), mode),
		UserMessage:       UserMessage(idea, ratio),
		Schema:            promptSchema(mode),
	}
}

func UserMessage(idea string, ratio AspectRatio) string {
	var b strings.Builder
	b.WriteString("User Idea: ")
	b.WriteString(idea)
	b.WriteString("\nDesired Aspect Ratio: ")
	b.WriteString(string(ratio))
	return b.String()
}

func systemInstruction(directive string, mode Mode) string {
	if mode == ModeImageReference {
		return fmt.Sprintf(imageReferenceInstruction, SubjectTag, directive)
	}
	return fmt.Sprintf(textToImageInstruction, directive)
}
