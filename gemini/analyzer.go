package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harvestlabs/webharvest"
	"google.golang.org/genai"
)

const analysisModel = "gemini-2.5-flash"

// analysisInputRunes caps the content sent for analysis.
const analysisInputRunes = 8000

// Ensure Analyzer implements webharvest.Analyzer at compile time.
var _ webharvest.Analyzer = (*Analyzer)(nil)

// Analyzer implements webharvest.Analyzer using Gemini in JSON mode.
type Analyzer struct {
	client *genai.Client
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze summarizes the document content.
func (a *Analyzer) Analyze(ctx context.Context, doc *webharvest.Document) (*webharvest.Analysis, error) {
	if doc == nil || doc.Content == "" {
		return nil, webharvest.Errorf(webharvest.EINVALID, "document content required")
	}

	prompt := BuildAnalysisPrompt(doc)
	config := BuildAnalysisConfig()

	result, err := a.client.Models.GenerateContent(ctx, analysisModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, webharvest.Errorf(webharvest.EUNAVAILABLE, "analysis failed: %v", err)
	}
	if result == nil {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "gemini returned nil result")
	}

	return ParseAnalysis(result.Text())
}

// BuildAnalysisConfig returns the GenerateContentConfig for analysis
// calls. JSON mode with a response schema keeps the output parseable.
func BuildAnalysisConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize web articles. Respond in the language of the article.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary": {Type: genai.TypeString},
				"keywords": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"key_points": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"sentiment": {
					Type: genai.TypeString,
					Enum: []string{"positive", "neutral", "negative"},
				},
			},
			Required: []string{"summary", "keywords", "key_points", "sentiment"},
		},
	}
}

// BuildAnalysisPrompt builds the user prompt for a document.
func BuildAnalysisPrompt(doc *webharvest.Document) string {
	content := doc.Content
	runes := []rune(content)
	if len(runes) > analysisInputRunes {
		content = string(runes[:analysisInputRunes])
	}

	var sb strings.Builder
	sb.WriteString("<article>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", doc.Title)
	fmt.Fprintf(&sb, "<source>%s</source>\n", doc.URL)
	fmt.Fprintf(&sb, "<content>%s</content>\n", content)
	sb.WriteString("</article>\n\n")
	sb.WriteString("Summarize the article in 2-3 sentences, extract 5-10 keywords, list 3-5 key points, and classify the overall sentiment.")
	return sb.String()
}

// ParseAnalysis decodes the model's JSON response.
func ParseAnalysis(text string) (*webharvest.Analysis, error) {
	var analysis webharvest.Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "gemini returned malformed analysis: %v", err)
	}
	if analysis.Summary == "" {
		return nil, webharvest.Errorf(webharvest.EINTERNAL, "gemini returned empty summary")
	}
	return &analysis, nil
}
