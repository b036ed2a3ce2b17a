// Package http provides http transport for coverage
package http

import (
	stdhttp "net/http"

	"datax/internal/modkit/httpkit"
	"datax/internal/services/coverage/domain"
)

// Register mounts coverage endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ChartInput](r, "/chart", h.chart)
	httpkit.PostBlob[domain.RenderInput](r, "/render", h.render)

	// downloads of the aggregated rows
	httpkit.PostBlob[domain.ExportInput](r, "/export/csv", h.exportCSV)
	httpkit.PostBlob[domain.ExportInput](r, "/export/xlsx", h.exportXLSX)

	httpkit.PostJSON[domain.SummaryInput](r, "/dataset/summary", h.summary)
	httpkit.Get(r, "/events", h.events)
}

type handlers struct{ svc domain.ServicePort }

func file(f domain.File, err error) (httpkit.File, error) {
	if err != nil {
		return httpkit.File{}, err
	}
	return httpkit.File{ContentType: f.ContentType, Name: f.Name, Bytes: f.Bytes}, nil
}

// swagger:route POST /coverage/chart Coverage coverageChart
// @Summary Filter, bucket and annotate the dataset into a chart spec
// @Description A swapped range is accepted and yields an empty chart
// @Tags Coverage
// @Accept json
// @Produce json
// @Param payload body domain.ChartInput true "Pipeline parameters"
// @Success 200 {object} domain.ChartOutput "ok"
// @Router /coverage/chart [post]
func (h *handlers) chart(r *stdhttp.Request, in domain.ChartInput) (any, error) {
	return h.svc.Chart(r.Context(), in)
}

// swagger:route POST /coverage/render Coverage coverageRender
// @Summary Render the chart as PNG or SVG
// @Tags Coverage
// @Accept json
// @Produce png
// @Produce image/svg+xml
// @Param payload body domain.RenderInput true "Pipeline and image parameters"
// @Success 200 {file} binary "image"
// @Router /coverage/render [post]
func (h *handlers) render(r *stdhttp.Request, in domain.RenderInput) (httpkit.File, error) {
	return file(h.svc.Render(r.Context(), in))
}

// swagger:route POST /coverage/export/csv Coverage coverageExportCSV
// @Summary Download aggregated rows as delimited text
// @Tags Coverage
// @Accept json
// @Produce text/csv
// @Param payload body domain.ExportInput true "Pipeline parameters and delimiter"
// @Success 200 {file} binary "csv"
// @Router /coverage/export/csv [post]
func (h *handlers) exportCSV(r *stdhttp.Request, in domain.ExportInput) (httpkit.File, error) {
	return file(h.svc.ExportCSV(r.Context(), in))
}

// swagger:route POST /coverage/export/xlsx Coverage coverageExportXLSX
// @Summary Download aggregated rows as a workbook
// @Tags Coverage
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param payload body domain.ExportInput true "Pipeline parameters"
// @Success 200 {file} binary "xlsx"
// @Router /coverage/export/xlsx [post]
func (h *handlers) exportXLSX(r *stdhttp.Request, in domain.ExportInput) (httpkit.File, error) {
	return file(h.svc.ExportXLSX(r.Context(), in))
}

// swagger:route POST /coverage/dataset/summary Coverage coverageSummary
// @Summary Describe the dataset behind a source
// @Tags Coverage
// @Accept json
// @Produce json
// @Param payload body domain.SummaryInput true "Source override, {} for the default"
// @Success 200 {object} domain.SummaryOutput "ok"
// @Router /coverage/dataset/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}

// swagger:route GET /coverage/events Coverage coverageEvents
// @Summary List the reference events with their marker tokens
// @Tags Coverage
// @Produce json
// @Success 200 {object} domain.EventsOutput "ok"
// @Router /coverage/events [get]
func (h *handlers) events(r *stdhttp.Request) (any, error) {
	return h.svc.Events(r.Context())
}
