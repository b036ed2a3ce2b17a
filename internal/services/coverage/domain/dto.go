// Package domain holds DTOs for coverage http, cli and service contracts
package domain

import (
	"datax/internal/core/aggregate"
	"datax/internal/core/chart"
)

// Dates are YYYY-MM-DD calendar days in UTC

// DateRange is an inclusive day window; empty bounds default to the dataset span
type DateRange struct {
	Start string `json:"start,omitempty" validate:"omitempty,day" example:"2021-01-01"`
	End   string `json:"end,omitempty" validate:"omitempty,day" example:"2021-01-31"`
}

// ChartInput is the full set of pipeline choices
type ChartInput struct {
	// Source overrides the configured default dataset
	Source     string    `json:"source,omitempty" validate:"omitempty,source_uri,max=2048" example:"data/green_deal_data.csv"`
	Range      DateRange `json:"range"`
	BucketDays int       `json:"bucket_days,omitempty" validate:"omitempty,min=1,max=3660" example:"7"`
	ShowTrend  bool      `json:"show_trend,omitempty" example:"true"`
	ShowEvents bool      `json:"show_events,omitempty" example:"true"`
	ShowRatio  bool      `json:"show_ratio,omitempty" example:"false"`
	Keyword    string    `json:"keyword,omitempty" validate:"omitempty,max=200" example:"green deal"`
	// Epoch anchors bucket boundaries; defaults to 1970-01-01
	Epoch string `json:"epoch,omitempty" validate:"omitempty,day" example:"2021-01-01"`
	Title string `json:"title,omitempty" validate:"omitempty,max=200" example:"Green Deal coverage"`
}

// ChartOutput is the chart plus the rows behind it
type ChartOutput struct {
	Chart        chart.Spec      `json:"chart"`
	Rows         []aggregate.Row `json:"rows"`
	Range        DateRange       `json:"range"`
	InRange      int             `json:"in_range" example:"31"`
	Dropped      int             `json:"dropped" example:"2"`
	Total        int             `json:"total" example:"1460"`
	TrendOmitted bool            `json:"trend_omitted,omitempty" example:"false"`
}

// RenderInput asks for an image of the chart
type RenderInput struct {
	ChartInput
	Format string `json:"format,omitempty" validate:"omitempty,oneof=png svg" example:"png"`
	Width  int    `json:"width,omitempty" validate:"omitempty,min=200,max=4096" example:"1024"`
	Height int    `json:"height,omitempty" validate:"omitempty,min=150,max=4096" example:"512"`
}

// ExportInput asks for the aggregated rows as a file
type ExportInput struct {
	ChartInput
	// Delimiter applies to csv only
	Delimiter string `json:"delimiter,omitempty" validate:"omitempty,oneof=comma tab semicolon" example:"comma"`
}

// SummaryInput names the dataset to describe
type SummaryInput struct {
	Source string `json:"source,omitempty" validate:"omitempty,source_uri,max=2048" example:"data/green_deal_data.csv"`
}

// SummaryOutput describes a loaded dataset
type SummaryOutput struct {
	Source   string   `json:"source" example:"file:///srv/data/green_deal_data.csv"`
	Rows     int      `json:"rows" example:"1458"`
	Dropped  int      `json:"dropped" example:"2"`
	Total    int      `json:"total" example:"1460"`
	MinDay   string   `json:"min_day" example:"2019-01-01"`
	MaxDay   string   `json:"max_day" example:"2024-12-31"`
	Keywords []string `json:"keywords"`
}

// EventRow is one reference event with its display index
type EventRow struct {
	Index int    `json:"index" example:"1"`
	Token string `json:"token" example:"[1]"`
	Date  string `json:"date" example:"2019-12-11"`
	Label string `json:"label" example:"European Green Deal presented"`
}

// EventsOutput is the active event table
type EventsOutput struct {
	Version int        `json:"version" example:"1"`
	Events  []EventRow `json:"events"`
}

// File is a rendered artifact
type File struct {
	ContentType string
	Name        string
	Bytes       []byte
}
