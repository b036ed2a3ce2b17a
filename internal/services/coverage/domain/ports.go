package domain

import "context"

// ServicePort is consumed by handlers, the cli and other modules
type ServicePort interface {
	Chart(ctx context.Context, in ChartInput) (ChartOutput, error)
	Render(ctx context.Context, in RenderInput) (File, error)
	ExportCSV(ctx context.Context, in ExportInput) (File, error)
	ExportXLSX(ctx context.Context, in ExportInput) (File, error)
	Summary(ctx context.Context, in SummaryInput) (SummaryOutput, error)
	Events(ctx context.Context) (EventsOutput, error)
}
