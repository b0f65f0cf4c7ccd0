// Package eval scores predicted verdicts against human ground-truth
// annotations: accuracy, per-class and averaged precision/recall/F1, a
// confusion matrix, and the individual mispredictions.
package eval

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/confsift/confsift"
)

// Labels carried by both annotations and predictions. "yes" means
// gibberish and is the positive class.
const (
	LabelGibberish = "yes"
	LabelUseful    = "no"
)

// Sample pairs one page's ground-truth annotation with its prediction.
type Sample struct {
	URL        string
	Title      string
	Annotation string
	Prediction string
}

// resultLine mirrors one line of the result-attached JSONL output.
type resultLine struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Annotation string `json:"annotation"`
	Result     struct {
		IsGibberish string `json:"is_gibberish"`
	} `json:"result"`
}

// LoadSamples reads result-attached JSONL and returns the samples that
// carry both a valid annotation and a valid prediction, plus the count
// of lines skipped for missing or invalid labels.
func LoadSamples(r io.Reader) ([]Sample, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var samples []Sample
	var skipped int
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var line resultLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			skipped++
			continue
		}
		annotation := strings.TrimSpace(line.Annotation)
		prediction := strings.TrimSpace(line.Result.IsGibberish)
		if !validLabel(annotation) || !validLabel(prediction) {
			skipped++
			continue
		}
		samples = append(samples, Sample{
			URL:        line.URL,
			Title:      line.Title,
			Annotation: annotation,
			Prediction: prediction,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return samples, skipped, nil
}

func validLabel(label string) bool {
	return label == LabelGibberish || label == LabelUseful
}

// ClassMetrics holds precision, recall, and F1 for one class.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ConfusionMatrix counts outcomes with gibberish as the positive class.
type ConfusionMatrix struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Metrics is the full evaluation over a sample set.
type Metrics struct {
	Accuracy float64

	Gibberish ClassMetrics
	Useful    ClassMetrics
	Macro     ClassMetrics
	Weighted  ClassMetrics

	Confusion ConfusionMatrix

	TotalSamples  int
	GibberishTrue int
	UsefulTrue    int
	GibberishPred int
	UsefulPred    int
}

// Evaluate computes the metrics for a sample set.
func Evaluate(samples []Sample) (*Metrics, error) {
	if len(samples) == 0 {
		return nil, confsift.Errorf(confsift.EINVALID, "no samples with both annotations and predictions")
	}

	var cm ConfusionMatrix
	for _, s := range samples {
		actual := s.Annotation == LabelGibberish
		predicted := s.Prediction == LabelGibberish
		switch {
		case actual && predicted:
			cm.TruePositives++
		case !actual && !predicted:
			cm.TrueNegatives++
		case !actual && predicted:
			cm.FalsePositives++
		default:
			cm.FalseNegatives++
		}
	}

	total := len(samples)
	m := &Metrics{
		Confusion:     cm,
		TotalSamples:  total,
		GibberishTrue: cm.TruePositives + cm.FalseNegatives,
		UsefulTrue:    cm.TrueNegatives + cm.FalsePositives,
		GibberishPred: cm.TruePositives + cm.FalsePositives,
		UsefulPred:    cm.TrueNegatives + cm.FalseNegatives,
	}
	m.Accuracy = float64(cm.TruePositives+cm.TrueNegatives) / float64(total)

	m.Gibberish = classMetrics(cm.TruePositives, cm.FalsePositives, cm.FalseNegatives, m.GibberishTrue)
	m.Useful = classMetrics(cm.TrueNegatives, cm.FalseNegatives, cm.FalsePositives, m.UsefulTrue)

	m.Macro = ClassMetrics{
		Precision: (m.Gibberish.Precision + m.Useful.Precision) / 2,
		Recall:    (m.Gibberish.Recall + m.Useful.Recall) / 2,
		F1:        (m.Gibberish.F1 + m.Useful.F1) / 2,
		Support:   total,
	}

	gw := float64(m.GibberishTrue) / float64(total)
	uw := float64(m.UsefulTrue) / float64(total)
	m.Weighted = ClassMetrics{
		Precision: m.Gibberish.Precision*gw + m.Useful.Precision*uw,
		Recall:    m.Gibberish.Recall*gw + m.Useful.Recall*uw,
		F1:        m.Gibberish.F1*gw + m.Useful.F1*uw,
		Support:   total,
	}

	return m, nil
}

// classMetrics computes one class's precision/recall/F1 from its true
// positive, false positive, and false negative counts. Undefined
// ratios score zero.
func classMetrics(tp, fp, fn, support int) ClassMetrics {
	c := ClassMetrics{Support: support}
	if tp+fp > 0 {
		c.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		c.Recall = float64(tp) / float64(tp+fn)
	}
	if c.Precision+c.Recall > 0 {
		c.F1 = 2 * c.Precision * c.Recall / (c.Precision + c.Recall)
	}
	return c
}

// Misprediction is one disagreement between annotation and prediction.
type Misprediction struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	GroundTruth string `json:"ground_truth"`
	Prediction  string `json:"prediction"`
	ErrorType   string `json:"error_type"`
}

// Mispredictions returns the samples where prediction and annotation
// disagree, in input order.
func Mispredictions(samples []Sample) []Misprediction {
	var out []Misprediction
	for _, s := range samples {
		if s.Annotation == s.Prediction {
			continue
		}
		out = append(out, Misprediction{
			URL:         s.URL,
			Title:       s.Title,
			GroundTruth: s.Annotation,
			Prediction:  s.Prediction,
			ErrorType:   errorType(s.Annotation, s.Prediction),
		})
	}
	return out
}

func errorType(groundTruth, prediction string) string {
	switch {
	case groundTruth == LabelUseful && prediction == LabelGibberish:
		return "False Positive (Useful marked as Gibberish)"
	case groundTruth == LabelGibberish && prediction == LabelUseful:
		return "False Negative (Gibberish marked as Useful)"
	default:
		return "Correct"
	}
}

// WriteMispredictions writes mispredictions as an indented JSON array.
func WriteMispredictions(w io.Writer, mispredictions []Misprediction) error {
	if mispredictions == nil {
		mispredictions = []Misprediction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mispredictions)
}
