// Package importer loads workflow definitions from YAML files and converts
// them into domain objects ready for persistence.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkflowSchema is the external YAML shape of a job type's workflow.
type WorkflowSchema struct {
	JobType   JobTypeImport    `yaml:"job_type"`
	Templates []TemplateImport `yaml:"templates"`
}

type JobTypeImport struct {
	Name string `yaml:"name"`
}

type TemplateImport struct {
	SortOrder            int      `yaml:"sort_order"`
	Name                 string   `yaml:"name"`
	Stage                string   `yaml:"stage,omitempty"`
	Category             string   `yaml:"category,omitempty"`
	Consultant           string   `yaml:"consultant,omitempty"`
	Deliverable          string   `yaml:"deliverable,omitempty"`
	Phase                string   `yaml:"phase,omitempty"`
	EstimatedDays        int      `yaml:"estimated_days"`
	PredecessorSortOrder *int     `yaml:"predecessor,omitempty"`
	Relationship         string   `yaml:"relationship,omitempty"`
	Subtasks             []SubtaskImport `yaml:"subtasks,omitempty"`
	Checklist            []string `yaml:"checklist,omitempty"`
}

type SubtaskImport struct {
	Name          string `yaml:"name"`
	EstimatedDays int    `yaml:"estimated_days"`
}

// LoadWorkflowSchema reads and parses a workflow YAML file.
func LoadWorkflowSchema(path string) (*WorkflowSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow file: %w", err)
	}
	var schema WorkflowSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing workflow file: %w", err)
	}
	return &schema, nil
}
