package hcc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// AIExtractor is the best-effort language-model strategy. It submits the
// note to an Ollama-compatible generate endpoint and parses the structured
// response into the same shape the rule strategy produces. Any failure
// (unreachable endpoint, timeout, malformed response) yields
// errAIUnavailable so the pipeline can fall back for that call.
type AIExtractor struct {
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
	lexicon  *Lexicon
}

// NewAIExtractor builds the AI strategy. The lexicon bounds the vocabulary:
// labels the model invents outside of it are discarded.
func NewAIExtractor(endpoint, model string, timeout time.Duration, client *http.Client, lexicon *Lexicon) *AIExtractor {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &AIExtractor{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		timeout:  timeout,
		client:   client,
		lexicon:  lexicon,
	}
}

// Name identifies the strategy in rationale output.
func (a *AIExtractor) Name() string { return "ai-extracted" }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type aiCondition struct {
	Label      string   `json:"label"`
	Qualifiers []string `json:"qualifiers"`
	Confidence float64  `json:"confidence"`
}

type aiExtraction struct {
	Conditions []aiCondition `json:"conditions"`
}

// Extract calls the model service with a bounded deadline. The surrounding
// context still applies, so a cancelled run aborts the in-flight call.
func (a *AIExtractor) Extract(ctx context.Context, text string) ([]ExtractedCondition, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  a.model,
		Prompt: a.buildPrompt(text),
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", errAIUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", errAIUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errAIUnavailable, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", errAIUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errAIUnavailable, resp.StatusCode)
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", errAIUnavailable, err)
	}
	var parsed aiExtraction
	if err := json.Unmarshal([]byte(stripCodeFence(gen.Response)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode extraction: %v", errAIUnavailable, err)
	}
	return a.toConditions(parsed), nil
}

func (a *AIExtractor) buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are a medical coding assistant. Identify which of the following conditions ")
	b.WriteString("are documented in the physician notes, with supporting qualifiers.\n\nConditions: ")
	b.WriteString(strings.Join(a.lexicon.Labels(), ", "))
	b.WriteString("\n\nPhysician Notes: \"")
	b.WriteString(text)
	b.WriteString("\"\n\nRespond in JSON: {\"conditions\": [{\"label\": \"...\", \"qualifiers\": [\"...\"], \"confidence\": 0.0}]}\n")
	b.WriteString("Use only the listed condition labels. Confidence is your probability the condition is documented.")
	return b.String()
}

// toConditions filters the model output to the closed vocabulary, clamps
// confidence to [0,1] and merges duplicate labels.
func (a *AIExtractor) toConditions(parsed aiExtraction) []ExtractedCondition {
	byLabel := make(map[string]*ExtractedCondition)
	var order []string
	for _, c := range parsed.Conditions {
		label := strings.TrimSpace(strings.ToLower(c.Label))
		if !a.lexicon.Contains(label) {
			continue
		}
		conf := c.Confidence
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		ec, ok := byLabel[label]
		if !ok {
			byLabel[label] = &ExtractedCondition{Label: label, Confidence: conf}
			ec = byLabel[label]
			order = append(order, label)
		} else if conf > ec.Confidence {
			ec.Confidence = conf
		}
		for _, q := range c.Qualifiers {
			q = strings.TrimSpace(strings.ToLower(q))
			if q != "" {
				ec.Qualifiers = appendUnique(ec.Qualifiers, q)
			}
		}
	}
	out := make([]ExtractedCondition, 0, len(order))
	for _, label := range order {
		ec := byLabel[label]
		sort.Strings(ec.Qualifiers)
		out = append(out, *ec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// stripCodeFence removes a markdown code block wrapper when the model adds
// one around its JSON answer.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
