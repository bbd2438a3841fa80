package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveJobID matches user input against the company's jobs by exact ID,
// ID prefix, or case-insensitive name.
func resolveJobID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("job ID is required")
	}

	jobs, err := app.Jobs.List(ctx, app.CompanyID)
	if err != nil {
		return "", err
	}

	for _, j := range jobs {
		if j.ID == input {
			return j.ID, nil
		}
	}
	for _, j := range jobs {
		if strings.EqualFold(j.Name, input) {
			return j.ID, nil
		}
	}

	var matches []string
	for _, j := range jobs {
		if strings.HasPrefix(j.ID, input) {
			matches = append(matches, j.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("job not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveJobTypeID matches user input against the company's job types by
// exact ID, ID prefix, or case-insensitive name.
func resolveJobTypeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("job type is required")
	}

	jobTypes, err := app.Templates.ListJobTypes(ctx, app.CompanyID)
	if err != nil {
		return "", err
	}

	for _, jt := range jobTypes {
		if jt.ID == input {
			return jt.ID, nil
		}
	}
	for _, jt := range jobTypes {
		if strings.EqualFold(jt.Name, input) {
			return jt.ID, nil
		}
	}

	var matches []string
	for _, jt := range jobTypes {
		if strings.HasPrefix(jt.ID, input) {
			matches = append(matches, jt.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("job type not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job type %q is ambiguous (%d matches)", input, len(matches))
	}
}
