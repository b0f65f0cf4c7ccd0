package confsift

import "context"

// TableResult pairs one extracted table with its analysis and verdict.
type TableResult struct {
	Index    int
	Grid     TableGrid
	Analysis *TableAnalysis
	Decision *TableDecision
}

// PageResult is the full processing outcome for one record: the
// converted markdown, every table judged in document order, the prose
// structure profile, and the page-level verdict.
type PageResult struct {
	Markdown string

	Structure *DocumentStructure

	// Scan counts link-like content across the whole document;
	// TableScan counts the portion inside tables.
	Scan      *ContentScan
	TableScan *ContentScan

	Tables []*TableResult

	// Word totals across all tables, header cells excluded.
	TableWords            int
	TableMeaningfulWords  int
	TablePlaceholderWords int

	Page *PageDecision
}

// Verdict returns the page-level verdict.
func (r *PageResult) Verdict() Verdict {
	if r == nil || r.Page == nil {
		return VerdictGibberish
	}
	if r.Page.Gibberish {
		return VerdictGibberish
	}
	return VerdictUseful
}

// Processor runs the full pipeline for a single record: conversion,
// table extraction, analysis, and the table and page decisions.
type Processor interface {
	Process(ctx context.Context, record *Record) (*PageResult, error)
}

// PageOutput is the one-line batch output for a processed page.
type PageOutput struct {
	URL       string `json:"url"`
	Decision  string `json:"decision"`
	Index     int    `json:"index"`
	PageTitle string `json:"page_title"`
}
