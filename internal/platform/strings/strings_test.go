package strings

import (
	"testing"

	"immersion/internal/platform/testkit"
)

func TestMustString(t *testing.T) {
	if got := MustString("profile", "name"); got != "profile" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { _ = MustString("   ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/immersion/": "/immersion",
		" profile  ":  "/profile",
		"//meta//":    "/meta",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { _ = MustPrefix("/") })
	testkit.MustPanic(t, func() { _ = MustPrefix("") })
}

func TestSQLNull(t *testing.T) {
	if SQLNull("  ") != nil {
		t.Fatal("blank should be NULL")
	}
	if SQLNull("notes") != "notes" {
		t.Fatal("value should pass through")
	}
}

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	if got := IfEmpty([]string{"PUT", "POST"}, def); len(got) != 2 {
		t.Fatalf("IfEmpty(set) = %v", got)
	}
}
