package config

import (
	"reflect"
	"testing"
	"time"

	kit "posdash/internal/platform/testkit"
)

func TestMayGetters(t *testing.T) {
	t.Setenv("POSDASH_TEST_NAME", "  dashboard  ")
	t.Setenv("POSDASH_TEST_SIZE", "25")
	t.Setenv("POSDASH_TEST_BAD_SIZE", "twenty")
	t.Setenv("POSDASH_TEST_SWAGGER", "false")
	t.Setenv("POSDASH_TEST_TIMEOUT", "1500ms")
	t.Setenv("POSDASH_TEST_ORIGINS", " http://a.test , ,http://b.test ")
	t.Setenv("POSDASH_TEST_BLANKS", " , , ")
	t.Setenv("POSDASH_TEST_BASE_URL", "http://pos.test/api/")
	t.Setenv("POSDASH_TEST_REL_URL", "/api")

	c := New().Prefix("POSDASH_").Prefix("TEST_")

	if got := c.MayString("NAME", "x"); got != "dashboard" {
		t.Fatalf("MayString=%q", got)
	}
	if got := c.MayString("MISSING", "x"); got != "x" {
		t.Fatalf("MayString default=%q", got)
	}
	if got := c.MayInt("SIZE", 10); got != 25 {
		t.Fatalf("MayInt=%d", got)
	}
	if got := c.MayInt("BAD_SIZE", 10); got != 10 {
		t.Fatalf("MayInt invalid=%d", got)
	}
	if got := c.MayBool("SWAGGER", true); got {
		t.Fatalf("MayBool=%v", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 1500*time.Millisecond {
		t.Fatalf("MayDuration=%v", got)
	}
	if got := c.MayCSV("ORIGINS", nil); !reflect.DeepEqual(got, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("MayCSV=%v", got)
	}
	if got := c.MayCSV("BLANKS", []string{"d"}); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("MayCSV blanks=%v", got)
	}
	if got := c.MayURL("BASE_URL", "http://def"); got != "http://pos.test/api" {
		t.Fatalf("MayURL=%q", got)
	}
	if got := c.MayURL("REL_URL", "http://def"); got != "http://def" {
		t.Fatalf("MayURL relative=%q", got)
	}
}

func TestMustString(t *testing.T) {
	t.Setenv("POSDASH_TEST_DBURL", "postgres://x")
	c := New().Prefix("POSDASH_TEST_")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString=%q", got)
	}

	kit.MustPanic(t, func() { c.MustString("NOPE") })
}
