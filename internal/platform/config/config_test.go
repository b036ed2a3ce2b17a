package config

import (
	"os"
	"slices"
	"testing"
	"time"

	kit "datax/internal/platform/testkit"
)

func TestPrefixComposes(t *testing.T) {
	api := New().Prefix("DATAX_").Prefix("API_")
	if got := api.key("PORT"); got != "DATAX_API_PORT" {
		t.Fatalf("key() = %q", got)
	}
}

func TestScalars(t *testing.T) {
	c := New().Prefix("DATAX_")
	t.Setenv("DATAX_SOURCE", "  data/green_deal_data.csv ")
	t.Setenv("DATAX_CACHE_MAX_ENTRIES", " 8 ")
	t.Setenv("DATAX_BAD_INT", "x")
	t.Setenv("DATAX_SWAGGER", "false")
	t.Setenv("DATAX_BAD_BOOL", "nope")

	if got := c.MustString("SOURCE"); got != "data/green_deal_data.csv" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	if c.MayString("SOURCE", "x") != "data/green_deal_data.csv" || c.MayString("MISSING", "def") != "def" {
		t.Fatalf("MayString mismatch")
	}
	if c.MayInt("CACHE_MAX_ENTRIES", 4) != 8 || c.MayInt("BAD_INT", 3) != 3 || c.MayInt("MISSING", 9) != 9 {
		t.Fatalf("MayInt mismatch")
	}
	if c.MayBool("SWAGGER", true) || !c.MayBool("BAD_BOOL", true) || !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool mismatch")
	}
}

func TestPorts(t *testing.T) {
	c := New().Prefix("P_")
	if got := c.MayPort("PORT", 4000); got != ":4000" {
		t.Fatalf("MayPort default = %q", got)
	}
	t.Setenv("P_PORT", "8088")
	if got := c.MayPort("PORT", 4000); got != ":8088" {
		t.Fatalf("MayPort = %q", got)
	}
	for k, v := range map[string]string{"P_BAD": "abc", "P_OOB": "70000"} {
		t.Setenv(k, v)
	}
	kit.MustPanic(t, func() { _ = c.MustPort("BAD") })
	kit.MustPanic(t, func() { _ = c.MayPort("OOB", 4000) })
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	t.Setenv("DUR_GO", "150ms")
	t.Setenv("DUR_SECONDS", "30")
	t.Setenv("DUR_BAD", "soon")

	cases := map[string]time.Duration{
		"GO":      150 * time.Millisecond,
		"SECONDS": 30 * time.Second,
		"BAD":     time.Minute,
		"MISSING": time.Minute,
	}
	for key, want := range cases {
		if got := c.MayDuration(key, time.Minute); got != want {
			t.Fatalf("MayDuration(%s) = %v, want %v", key, got, want)
		}
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_ORIGINS", " https://a.example, https://b.example , ,")
	t.Setenv("CSV_BLANK", " , ,  ,")

	if got := c.MayCSV("ORIGINS", nil); !slices.Equal(got, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("MayCSV = %#v", got)
	}
	def := []string{"*"}
	if got := c.MayCSV("BLANK", def); !slices.Equal(got, def) {
		t.Fatalf("all-blank should fall back: %#v", got)
	}
	if got := c.MayCSV("MISSING", def); !slices.Equal(got, def) {
		t.Fatalf("missing should fall back: %#v", got)
	}
}

func TestLoadDotenv(t *testing.T) {
	p := kit.WriteFile(t, ".env", "DOTENV_SOURCE=data/green_deal_data.csv\nDOTENV_KEEP=file\n")
	t.Setenv("DOTENV_KEEP", "process")
	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_SOURCE") })

	loaded, err := LoadDotenv(p, p+".missing")
	if err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != p {
		t.Fatalf("loaded = %v", loaded)
	}
	c := New().Prefix("DOTENV_")
	if got := c.MayString("SOURCE", ""); got != "data/green_deal_data.csv" {
		t.Fatalf("dotenv value not loaded: %q", got)
	}
	if got := c.MayString("KEEP", ""); got != "process" {
		t.Fatalf("process env must win, got %q", got)
	}
}
