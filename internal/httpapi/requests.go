package httpapi

import (
	"encoding/json"
	"fmt"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/config"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

// modelRequest is the union §6.2 describes: a model list entry is either a
// bare registry id string or a full ad hoc ModelSpec, optionally carrying
// its own provider credentials so the server can build a one-off adapter
// for a model that isn't in the operator's roster.
type modelRequest struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Provider             string   `json:"provider"`
	EndpointRef          string   `json:"endpoint_ref"`
	APIKey               string   `json:"api_key"`
	BaseURL              string   `json:"base_url"`
	Temperature          *float64 `json:"temperature"`
	TopP                 *float64 `json:"top_p"`
	ThinkingEnabled      bool     `json:"thinking_enabled"`
	ThinkingLevel        string   `json:"thinking_level"`
	CustomPromptTemplate string   `json:"custom_prompt_template"`
}

func (m modelRequest) isAdHoc() bool {
	return m.Provider != ""
}

func (m modelRequest) spec() puzzle.ModelSpec {
	return puzzle.ModelSpec{
		ID:                   m.ID,
		Name:                 m.Name,
		EndpointRef:          m.EndpointRef,
		Temperature:          m.Temperature,
		TopP:                 m.TopP,
		Thinking:             puzzle.ThinkingMode{Enabled: m.ThinkingEnabled, Level: puzzle.ThinkingLevel(m.ThinkingLevel)},
		CustomPromptTemplate: m.CustomPromptTemplate,
	}
}

// parseModels accepts each array element as either a JSON string (a bare
// registry id) or a JSON object (a modelRequest).
func parseModels(raw []json.RawMessage) ([]modelRequest, error) {
	out := make([]modelRequest, 0, len(raw))
	for i, r := range raw {
		var id string
		if err := json.Unmarshal(r, &id); err == nil {
			out = append(out, modelRequest{ID: id})
			continue
		}
		var m modelRequest
		if err := json.Unmarshal(r, &m); err != nil {
			return nil, fmt.Errorf("models[%d]: neither a string id nor a model object: %w", i, err)
		}
		if m.ID == "" {
			return nil, fmt.Errorf("models[%d]: id is required", i)
		}
		out = append(out, m)
	}
	return out, nil
}

// resolveModels turns a request's model list into live ModelSpecs paired
// with their adapters, resolving bare ids against reg and building ad hoc
// adapters for fully specified entries. maxModels of 0 means unlimited.
func resolveModels(reg *config.Registry, models []modelRequest, maxModels int) ([]puzzle.ModelSpec, map[string]adapter.StreamingAdapter, error) {
	if maxModels > 0 && len(models) > maxModels {
		return nil, nil, fmt.Errorf("invalid_request: %d models exceeds the %d model cap", len(models), maxModels)
	}
	if len(models) == 0 {
		return nil, nil, fmt.Errorf("invalid_request: models must not be empty")
	}

	specs := make([]puzzle.ModelSpec, 0, len(models))
	handles := make(map[string]adapter.StreamingAdapter, len(models))

	for _, m := range models {
		if m.isAdHoc() {
			entry := config.ModelEntry{
				ID: m.ID, Name: m.Name, Provider: m.Provider, EndpointRef: m.EndpointRef,
				APIKey: m.APIKey, BaseURL: m.BaseURL, Temperature: m.Temperature, TopP: m.TopP,
				ThinkingEnabled: m.ThinkingEnabled, ThinkingLevel: m.ThinkingLevel,
				CustomPromptTemplate: m.CustomPromptTemplate,
			}
			built, err := config.BuildAdapter(entry)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid_request: model %q: %w", m.ID, err)
			}
			specs = append(specs, m.spec())
			handles[m.ID] = built
			continue
		}

		spec, ok := reg.Resolve(m.ID)
		if !ok {
			return nil, nil, fmt.Errorf("invalid_request: unknown model id %q", m.ID)
		}
		a, err := reg.Adapter(m.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid_request: model %q: %w", m.ID, err)
		}
		specs = append(specs, spec)
		handles[m.ID] = a
	}

	return specs, handles, nil
}

type clueRequest struct {
	ClueID      string `json:"clue_id"`
	Prompt      string `json:"prompt"`
	Answer      string `json:"answer"`
	Length      int    `json:"length"`
	AllowHyphen bool   `json:"allow_hyphen"`
	CaseRule    string `json:"case_rule"`
}

type roundRequest struct {
	RoundID     string        `json:"round_id"`
	OutputRule  string        `json:"output_rule"`
	MaxTokens   int           `json:"max_tokens"`
	TimeLimitMs int           `json:"time_limit_ms"`
	Clues       []clueRequest `json:"clues"`
}

type raceRequest struct {
	Name   string            `json:"name"`
	Models []json.RawMessage `json:"models"`
	Rounds []roundRequest    `json:"rounds"`
}

type wordleRequest struct {
	Name        string            `json:"name"`
	Models      []json.RawMessage `json:"models"`
	TargetWord  string            `json:"target_word"`
	IncludeUser bool              `json:"include_user"`
}
