package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func TestChErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code int32
		want ErrorCode
	}{
		{47, ErrorCodeSchema},
		{60, ErrorCodeSchema},
		{81, ErrorCodeSchema},
		{497, ErrorCodeSource},
		{516, ErrorCodeSource},
		{159, ErrorCodeUnavailable},
		{394, ErrorCodeUnavailable},
		{1, ErrorCodeDB},
	}
	for _, c := range cases {
		err := fmt.Errorf("query: %w", &clickhouse.Exception{Code: c.code, Message: "x"})
		got, ok := ChErrorCode(err)
		if !ok || got != c.want {
			t.Fatalf("ChErrorCode(%d) = %v, %v; want %v", c.code, got, ok, c.want)
		}
	}
	if _, ok := ChErrorCode(stderrs.New("dial tcp: refused")); ok {
		t.Fatalf("foreign error should report ok=false")
	}
}

func TestFromClickhouse(t *testing.T) {
	if FromClickhouse(nil, "x") != nil || FromClickhousef(nil, "x %d", 1) != nil {
		t.Fatalf("nil in, nil out")
	}
	if got := CodeOf(FromClickhouse(stderrs.New("dial tcp: refused"), "select")); got != ErrorCodeSource {
		t.Fatalf("transport failure code = %v", got)
	}
	err := FromClickhousef(&clickhouse.Exception{Code: 60, Message: "Table media.cov does not exist"}, "select %s", "cov")
	if CodeOf(err) != ErrorCodeSchema || err.Error() == "" {
		t.Fatalf("unknown table = %v", err)
	}
}
