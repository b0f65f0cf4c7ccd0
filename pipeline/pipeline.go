// Package pipeline chains conversion, table extraction, content
// analysis, and the quality decisions into a single per-record pass.
package pipeline

import (
	"context"

	"github.com/confsift/confsift"
	"github.com/confsift/confsift/analyze"
	"github.com/confsift/confsift/decide"
	"github.com/confsift/confsift/markdown"
)

var _ confsift.Processor = (*Processor)(nil)

// Processor implements confsift.Processor on top of a storage-format
// converter. Processing is pure computation; the context is only
// consulted for cancellation between stages.
type Processor struct {
	converter confsift.Converter
}

// NewProcessor returns a processor that converts record bodies with
// the given converter.
func NewProcessor(converter confsift.Converter) *Processor {
	return &Processor{converter: converter}
}

// Process converts one record body to markdown and judges it: every
// table gets a context-aware verdict, the prose gets a structure
// profile, and the page verdict aggregates both.
func (p *Processor) Process(ctx context.Context, record *confsift.Record) (*confsift.PageResult, error) {
	if record == nil {
		return nil, confsift.Errorf(confsift.EINVALID, "record required")
	}

	md, err := p.converter.Convert(record.Body)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &confsift.PageResult{
		Markdown:  md,
		Structure: markdown.AnalyzeStructure(md),
		Scan:      markdown.Scan(md),
		TableScan: &confsift.ContentScan{},
	}

	grids := markdown.ExtractTables(md)
	analyses := make([]*confsift.TableAnalysis, len(grids))
	for i, grid := range grids {
		analyses[i] = analyze.Table(grid)
	}

	useful, gibberish := 0, 0
	for i, a := range analyses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		decision := decide.DecideTableInContext(a, analyses, i)
		if decision.Verdict.Gibberish() {
			gibberish++
		} else {
			useful++
		}

		result.Tables = append(result.Tables, &confsift.TableResult{
			Index:    i,
			Grid:     grids[i],
			Analysis: a,
			Decision: decision,
		})

		result.TableWords += a.Words
		result.TableMeaningfulWords += a.MeaningfulWords
		result.TablePlaceholderWords += a.PlaceholderWords + a.IndexWords
		result.TableScan.Add(&confsift.ContentScan{
			Links:    a.Links,
			Images:   a.Images,
			Files:    a.Files,
			Mentions: a.Mentions,
		})
	}

	result.Page = decide.DecidePage(decide.PageSignals{
		UsefulTables:       useful,
		GibberishTables:    gibberish,
		TotalTables:        len(grids),
		WordsOutsideTables: result.Structure.WordCount,
		Document:           *result.Scan,
		Tables:             *result.TableScan,
	})

	return result, nil
}
