package router

import (
	"encoding/json"
)

// DefaultResponseTemplate is used when the model omits response_template.
const DefaultResponseTemplate = "Action '{action}' completed successfully."

// ActionPlan is the structured command the completion model is required to
// emit: one action, its arguments, and an optional response template.
type ActionPlan struct {
	Action           string
	Arguments        map[string]interface{}
	ResponseTemplate string
}

// ParsePlan validates the raw completion output into an ActionPlan.
func ParsePlan(raw string) (*ActionPlan, error) {
	var top interface{}
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, &MalformedPlanError{Reason: "The assistant response was not valid JSON."}
	}

	obj, ok := top.(map[string]interface{})
	if !ok {
		return nil, &MalformedPlanError{Reason: "The assistant response must be a JSON object."}
	}

	action, ok := obj["action"].(string)
	if !ok {
		return nil, &MalformedPlanError{Reason: "The assistant response did not include a valid action."}
	}

	arguments := map[string]interface{}{}
	if raw, present := obj["arguments"]; present {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, &MalformedPlanError{Reason: "The assistant response contained invalid arguments."}
		}
		arguments = m
	}

	template := DefaultResponseTemplate
	if raw, present := obj["response_template"]; present {
		s, ok := raw.(string)
		if !ok {
			return nil, &MalformedPlanError{Reason: "The assistant response contained an invalid response template."}
		}
		template = s
	}

	return &ActionPlan{
		Action:           action,
		Arguments:        arguments,
		ResponseTemplate: template,
	}, nil
}
