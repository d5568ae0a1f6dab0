package gemini

import (
	"context"

	"google.golang.org/genai"
)

// modelsAPI is the subset of *genai.Models used by this package.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
	EmbedContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.EmbedContentConfig,
	) (*genai.EmbedContentResponse, error)
}

// promptData represents the data passed to the prompt template
type promptData struct {
	Text     string
	Language string
}

// grammarResponse is the JSON document the grammar prompt asks for.
type grammarResponse struct {
	Issues []issueSchema `json:"issues"`
}

// issueSchema is one flagged problem in the checked text.
type issueSchema struct {
	// Excerpt is the offending span as it appears in the text
	Excerpt string `json:"excerpt"`

	// Message describes the problem
	Message string `json:"message"`

	// Category is a coarse label such as "grammar" or "spelling"
	Category string `json:"category,omitempty"`
}

// grammarSchema constrains the model output to grammarResponse.
var grammarSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"issues": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"excerpt":  {Type: genai.TypeString},
					"message":  {Type: genai.TypeString},
					"category": {Type: genai.TypeString},
				},
				Required: []string{"excerpt", "message"},
			},
		},
	},
	Required: []string{"issues"},
}

func userContent(text string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	}}
}
