package labelstudio

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Task is one Label Studio annotation task.
type Task struct {
	ID          int64         `json:"id"`
	Data        TaskData      `json:"data"`
	Annotations []*Annotation `json:"annotations"`
}

// TaskData carries the page reference a task was created from. Which
// field holds it varies between projects.
type TaskData struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	SpaceURL string `json:"space_url"`
	Body     string `json:"body"`
}

// PageURL returns the Confluence URL referenced by the task, trying
// the data fields in their usual order. Returns "" when the task
// carries no recognizable URL.
func (t *Task) PageURL() string {
	for _, field := range []string{t.Data.Text, t.Data.URL, t.Data.SpaceURL, t.Data.Body} {
		if field == "" {
			continue
		}
		if url := ExtractURL(field); url != "" {
			return url
		}
		break
	}
	return ""
}

var hrefRE = regexp.MustCompile(`href\s*=\s*"([^"]+)"`)

// ExtractURL pulls a URL out of a task data field, which holds either
// an HTML anchor or the raw URL itself.
func ExtractURL(field string) string {
	if field == "" {
		return ""
	}
	if m := hrefRE.FindStringSubmatch(field); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(field, "http") {
		return strings.TrimSpace(field)
	}
	return ""
}

// Annotation is one annotator's response to a task.
type Annotation struct {
	ID          int64               `json:"id"`
	CompletedBy int64               `json:"completed_by"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	Result      []*AnnotationResult `json:"result"`
}

// Fields flattens the annotation results into a name-to-value map.
// Choice results join their choices with ", "; text results take the
// first entry.
func (a *Annotation) Fields() map[string]string {
	fields := make(map[string]string)
	for _, r := range a.Result {
		if r.FromName == "" {
			continue
		}
		switch {
		case len(r.Value.Choices) > 0:
			fields[r.FromName] = strings.Join(r.Value.Choices, ", ")
		case len(r.Value.Text) > 0:
			fields[r.FromName] = r.Value.Text[0]
		default:
			raw, err := json.Marshal(r.Value)
			if err == nil {
				fields[r.FromName] = string(raw)
			}
		}
	}
	return fields
}

// AnnotationResult is one labeled field inside an annotation.
type AnnotationResult struct {
	FromName string          `json:"from_name"`
	Value    AnnotationValue `json:"value"`
}

// AnnotationValue holds the label payload. Text arrives as either a
// string or a list of strings depending on the labeling config.
type AnnotationValue struct {
	Choices []string   `json:"choices,omitempty"`
	Text    StringList `json:"text,omitempty"`
}

// StringList decodes a JSON string or array of strings into a slice.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return err
	}
	*l = StringList(ss)
	return nil
}
