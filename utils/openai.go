package utils

import (
	"barhop/config"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// RatingCategories are the eleven fixed rating dimensions, in schema order.
var RatingCategories = []string{
	"taste", "bitterness", "aroma", "smoothness", "carbonation", "temperature",
	"music", "lighting", "crowd_vibe", "cleanliness", "decor",
}

// RatingContext carries the situational signals sent alongside a description.
type RatingContext struct {
	DayOfWeek    int    `json:"day_of_week"`
	GroupSize    int    `json:"group_size"`
	CompanyType  string `json:"company_type"`
	BeersAlready int    `json:"beers_already"`
}

var aiClient = resty.New().SetTimeout(12 * time.Second)

// ratingSchema builds the strict JSON schema the model output must satisfy:
// all eleven dimensions plus overall as 0-10 integers, plus a review string.
func ratingSchema() map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}
	for _, k := range RatingCategories {
		properties[k] = map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 10}
		required = append(required, k)
	}
	properties["overall"] = map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 10}
	properties["review"] = map[string]interface{}{"type": "string"}
	required = append(required, "overall", "review")

	return map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
		"required":             required,
	}
}

// callRatingModel invokes the Responses API with one model and returns the
// parsed structured output. A payload that is not valid JSON is treated as an
// empty result, not an error: sanitization upstream fills in defaults.
func callRatingModel(model, description string, ctx RatingContext, beerName string) (map[string]interface{}, error) {
	userPayload, err := json.Marshal(map[string]interface{}{
		"description": description,
		"context":     ctx,
		"beerMeta":    map[string]string{"name": beerName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %v", err)
	}

	body := map[string]interface{}{
		"model":             model,
		"temperature":       0.2,
		"max_output_tokens": 300,
		"instructions": "Convert beer + ambiance descriptions into 0-10 integer ratings and a short review. " +
			"Return ONLY JSON that satisfies the provided JSON schema. No extra prose.",
		"text": map[string]interface{}{
			"format": map[string]interface{}{
				"type":   "json_schema",
				"name":   "beer_ratings",
				"schema": ratingSchema(),
				"strict": true,
			},
		},
		"input": "Data:\n" + string(userPayload),
	}

	resp, err := aiClient.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.OpenAIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(config.AppConfig.OpenAIURL)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %v", err)
	}

	log.Printf("[ai] model %s response: %d", model, resp.StatusCode())

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("model API error %d: %s", resp.StatusCode(), resp.String())
	}

	var data map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %v", err)
	}

	result := map[string]interface{}{}
	if text := ExtractOutputText(data); text != "" {
		if err := json.Unmarshal([]byte(text), &result); err != nil {
			return map[string]interface{}{}, nil
		}
	}
	return result, nil
}

// ExtractOutputText pulls the structured-output text out of a Responses API
// payload. Response shapes vary by provider and API version, so known
// locations are tried in priority order; anything unrecognized yields "".
func ExtractOutputText(data map[string]interface{}) string {
	if s, ok := data["output_text"].(string); ok && s != "" {
		return s
	}

	if output, ok := data["output"].([]interface{}); ok && len(output) > 0 {
		if first, ok := output[0].(map[string]interface{}); ok {
			if content, ok := first["content"].([]interface{}); ok && len(content) > 0 {
				for _, c := range content {
					part, ok := c.(map[string]interface{})
					if !ok {
						continue
					}
					if part["type"] == "output_text" {
						if s, ok := part["text"].(string); ok {
							return s
						}
					}
				}
				if part, ok := content[0].(map[string]interface{}); ok {
					if s, ok := part["text"].(string); ok {
						return s
					}
				}
			}
		}
	}

	// Chat-completions shaped fallback
	if choices, ok := data["choices"].([]interface{}); ok && len(choices) > 0 {
		if first, ok := choices[0].(map[string]interface{}); ok {
			if message, ok := first["message"].(map[string]interface{}); ok {
				if s, ok := message["content"].(string); ok {
					return s
				}
			}
		}
	}

	return ""
}

// InferRatings calls the primary model and, on any failure, the fallback
// model with identical inputs. Returns the raw structured output and the
// model that produced it.
func InferRatings(description string, ctx RatingContext, beerName string) (map[string]interface{}, string, error) {
	primary := config.AppConfig.OpenAIModelPrimary
	result, err := callRatingModel(primary, description, ctx, beerName)
	if err == nil {
		return result, primary, nil
	}
	log.Printf("[ai] primary model %s failed (%v), trying fallback", primary, err)

	fallback := config.AppConfig.OpenAIModelFallback
	result, err = callRatingModel(fallback, description, ctx, beerName)
	if err != nil {
		return nil, "", err
	}
	return result, fallback, nil
}
