package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coreselect/internal/llm"
	"coreselect/internal/parts"
	"coreselect/internal/recommend/contract"
	"coreselect/internal/shared/telemetry"
)

// ErrInvalidLLMResponse is returned when the model's answer is not a JSON object.
var ErrInvalidLLMResponse = errors.New("Invalid response format from AI service")

// LLMPicker asks a language model to choose the build.
type LLMPicker struct {
	Client llm.Client
}

func (LLMPicker) Name() string { return SourceLLM }

func (p LLMPicker) Pick(ctx context.Context, in PickInput) (contract.Result, error) {
	raw, err := p.Client.Complete(ctx, llm.CompleteInput{
		System: systemPrompt,
		User:   BuildPrompt(in),
		JSON:   true,
	})
	if err != nil {
		return contract.Result{}, fmt.Errorf("llm completion: %w", err)
	}

	body, ok := extractJSONObject(raw)
	if !ok {
		return contract.Result{}, ErrInvalidLLMResponse
	}
	res, err := contract.ParseResult([]byte(body))
	if err != nil {
		var missing *contract.MissingFieldsError
		if errors.As(err, &missing) {
			return contract.Result{}, err
		}
		return contract.Result{}, fmt.Errorf("%w: %v", ErrInvalidLLMResponse, err)
	}
	warnUnknownParts(in.Catalog, res)
	return res, nil
}

// extractJSONObject trims markdown fences or chatter around the outermost object.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func warnUnknownParts(catalog *parts.Catalog, res contract.Result) {
	picks := map[parts.Category]string{
		parts.Motherboards: res.Motherboard,
		parts.CPUs:         res.CPU,
		parts.Memory:       res.Memory,
		parts.Storage:      res.Storage,
		parts.GPUs:         res.GPU,
		parts.Cases:        res.Case,
		parts.CPUCoolers:   res.CPUCooler,
		parts.CaseFans:     res.CaseFans,
		parts.PSUs:         res.PSU,
	}
	for cat, name := range picks {
		if _, ok := catalog.Find(cat, name); !ok {
			telemetry.Warn("recommend.unknown_part", map[string]any{
				"category": string(cat),
				"name":     name,
			})
		}
	}
}

var _ Picker = LLMPicker{}
