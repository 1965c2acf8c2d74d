package router

import (
	"testing"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantAction   string
		wantTemplate string
		wantArgs     int
		wantErr      string
	}{
		{
			name:         "full plan",
			raw:          `{"action": "create_document", "arguments": {"title": "Notes", "content": "hi"}, "response_template": "Created '{title}'."}`,
			wantAction:   "create_document",
			wantTemplate: "Created '{title}'.",
			wantArgs:     2,
		},
		{
			name:         "missing template falls back to default",
			raw:          `{"action": "list_documents"}`,
			wantAction:   "list_documents",
			wantTemplate: DefaultResponseTemplate,
			wantArgs:     0,
		},
		{
			name:         "missing arguments default to empty map",
			raw:          `{"action": "respond", "response_template": "Hello."}`,
			wantAction:   "respond",
			wantTemplate: "Hello.",
			wantArgs:     0,
		},
		{
			name:    "not JSON at all",
			raw:     "I think you should create a document",
			wantErr: "The assistant response was not valid JSON.",
		},
		{
			name:    "JSON but not an object",
			raw:     `["create_document"]`,
			wantErr: "The assistant response must be a JSON object.",
		},
		{
			name:    "missing action",
			raw:     `{"arguments": {}}`,
			wantErr: "The assistant response did not include a valid action.",
		},
		{
			name:    "non-string action",
			raw:     `{"action": 42}`,
			wantErr: "The assistant response did not include a valid action.",
		},
		{
			name:    "non-object arguments",
			raw:     `{"action": "respond", "arguments": "oops"}`,
			wantErr: "The assistant response contained invalid arguments.",
		},
		{
			name:    "non-string template",
			raw:     `{"action": "respond", "response_template": {"nested": true}}`,
			wantErr: "The assistant response contained an invalid response template.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ParsePlan(tt.raw)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParsePlan(%q) expected error %q, got nil", tt.raw, tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParsePlan(%q) unexpected error: %v", tt.raw, err)
			}
			if plan.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", plan.Action, tt.wantAction)
			}
			if plan.ResponseTemplate != tt.wantTemplate {
				t.Errorf("ResponseTemplate = %q, want %q", plan.ResponseTemplate, tt.wantTemplate)
			}
			if len(plan.Arguments) != tt.wantArgs {
				t.Errorf("len(Arguments) = %d, want %d", len(plan.Arguments), tt.wantArgs)
			}
		})
	}
}

func TestParsePlanIsMalformedPlanError(t *testing.T) {
	_, err := ParsePlan("not json")
	if _, ok := err.(*MalformedPlanError); !ok {
		t.Errorf("error type = %T, want *MalformedPlanError", err)
	}
}
