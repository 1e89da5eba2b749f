package common

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ProcessTemplate renders a template string with the given arguments. Job
// commands and the pid/log file paths in a job definition are templates, so
// a single definition can be parameterized from the command line (and can use
// the sprig function library, e.g. {{ env "HOME" }}).
//
// Parameters:
//   - text: The template to process
//   - args: Map of variable names to their values
//
// Returns:
//   - The processed template string with substituted variables
//   - An error if template processing fails
func ProcessTemplate(text string, args map[string]interface{}) (string, error) {
	tmpl, err := template.New("job").
		Option("missingkey=zero").
		Funcs(sprig.FuncMap()).
		Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, args); err != nil {
		return "", err
	}

	// fix https://github.com/golang/go/issues/24963
	res := buf.String()
	res = strings.ReplaceAll(res, "<no value>", "")

	return res, nil
}

// ProcessTemplateList renders every template in the list with the same
// arguments; the job's env entries go through here.
func ProcessTemplateList(list []string, args map[string]interface{}) ([]string, error) {
	res := []string{}
	for _, item := range list {
		processedItem, err := ProcessTemplate(item, args)
		if err != nil {
			return nil, err
		}
		res = append(res, processedItem)
	}
	return res, nil
}
