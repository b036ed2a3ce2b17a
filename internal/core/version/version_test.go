package version

import "testing"

func TestInfoDefaults(t *testing.T) {
	bi := Info("datax-api")
	if bi.Service != "datax-api" || bi.Version != "dev" || bi.Commit != "none" || bi.Go == "" {
		t.Fatalf("Info = %+v", bi)
	}
	if Short() != "dev (none)" {
		t.Fatalf("Short = %q", Short())
	}
}
