package openapi

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSpecReturnsCopyAndMatchesFile(t *testing.T) {
	want, err := os.ReadFile("legislation.yaml")
	if err != nil {
		t.Fatalf("read legislation.yaml: %v", err)
	}
	got := Spec()
	if !bytes.Equal(got, want) {
		t.Fatal("embedded spec differs from legislation.yaml")
	}
	got[0] = '#'
	if bytes.Equal(Spec(), got) {
		t.Fatal("Spec must return a copy")
	}
}

func TestSpecListsEveryRoute(t *testing.T) {
	doc := string(Spec())
	for _, route := range []string{
		"/bills:", "/bills/{id}:", "/bills/{id}/votes:",
		"/members:", "/members/{bioguideId}:",
		"/committees:", "/committees/{id}:", "/stats:",
	} {
		if !strings.Contains(doc, "  "+route) {
			t.Errorf("route %s missing from spec", route)
		}
	}
}
