package source

import (
	"path/filepath"
	"testing"

	perr "datax/internal/platform/errors"
)

func TestAllowlist(t *testing.T) {
	root := t.TempDir()
	a := NewAllowlist(
		filepath.Join(root, "data"),
		"https://files.example.org/coverage/",
		"postgres://reader@db/media",
		"clickhouse://h:9000/media?table=cov",
		"  ",
	)
	if a.Len() != 4 {
		t.Fatalf("Len = %d", a.Len())
	}

	allowed := []string{
		filepath.Join(root, "data", "green.csv"),
		"file://" + filepath.Join(root, "data", "sub", "x.csv.gz"),
		filepath.Join(root, "data", ".", "y.csv"),
		"https://files.example.org/coverage/2021.csv",
		"HTTPS://FILES.example.org/coverage/2021.csv",
		"postgres://reader@db/media?table=coverage",
		"postgresql://reader@db/media?table=other",
		"clickhouse://h:9000/media?table=cov",
	}
	for _, s := range allowed {
		if err := a.Check(s); err != nil {
			t.Fatalf("Check(%q) = %v", s, err)
		}
	}

	denied := []string{
		"",
		filepath.Join(root, "secret.csv"),
		filepath.Join(root, "data", "..", "secret.csv"),
		filepath.Join(root, "data-other", "x.csv"),
		"/etc/passwd",
		"http://files.example.org/coverage/2021.csv",
		"https://files.example.org/coverage/../admin.csv",
		"https://files.example.org.evil/coverage/x.csv",
		"https://user@files.example.org/coverage/x.csv",
		"http://169.254.169.254/latest/meta-data",
		"postgres://admin@db/media?table=coverage",
		"postgres://reader@db/other?table=coverage",
		"clickhouse://h:9000/media?table=users",
	}
	for _, s := range denied {
		err := a.Check(s)
		if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
			t.Fatalf("Check(%q) should be rejected, got %v", s, err)
		}
		if e, _ := perr.As(err); e.Field() != "source" {
			t.Fatalf("rejection should name the source field")
		}
	}
}

func TestAllowlist_EmptyAdmitsNothing(t *testing.T) {
	if NewAllowlist().Allows("data.csv") {
		t.Fatalf("empty allowlist must refuse everything")
	}
}
