package cli

import (
	perr "datax/internal/platform/errors"
	"datax/internal/services/coverage/domain"

	"github.com/spf13/pflag"
)

// addChartFlags registers the pipeline flags shared by chart, export and table
func addChartFlags(fs *pflag.FlagSet) {
	fs.String("start", "", "first day, YYYY-MM-DD (default: dataset min day)")
	fs.String("end", "", "last day, inclusive (default: dataset max day)")
	fs.Int("bucket-days", 1, "bucket width in days")
	fs.Bool("trend", false, "overlay a least-squares trend line")
	fs.Bool("events", false, "annotate reference events in range")
	fs.Bool("ratio", false, "add article count / all articles on a secondary axis")
	fs.String("keyword", "", "keep only rows with this keyword")
	fs.String("epoch", "", "anchor day for bucket boundaries (default 1970-01-01)")
	fs.String("title", "", "chart title override")
}

// chartInput reads the pipeline flags. The service reads a zero width as an
// omitted API field, so an explicit --bucket-days 0 is refused here.
func (a *app) chartInput() (domain.ChartInput, error) {
	if n := a.v.GetInt("bucket-days"); n < 1 {
		return domain.ChartInput{}, perr.WithField(perr.InvalidArgf("bucket_days must be >= 1, got %d", n), "bucket_days")
	}
	return domain.ChartInput{
		Source:     a.v.GetString("source"),
		Range:      domain.DateRange{Start: a.v.GetString("start"), End: a.v.GetString("end")},
		BucketDays: a.v.GetInt("bucket-days"),
		ShowTrend:  a.v.GetBool("trend"),
		ShowEvents: a.v.GetBool("events"),
		ShowRatio:  a.v.GetBool("ratio"),
		Keyword:    a.v.GetString("keyword"),
		Epoch:      a.v.GetString("epoch"),
		Title:      a.v.GetString("title"),
	}, nil
}
