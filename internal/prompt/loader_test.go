package prompt

import (
	"strings"
	"testing"
)

func TestGetSystemPrompt(t *testing.T) {
	loader := NewLoader()

	got, err := loader.GetSystemPrompt()
	if err != nil {
		t.Fatalf("GetSystemPrompt() error = %v", err)
	}
	if got == "" {
		t.Fatal("GetSystemPrompt() returned empty prompt")
	}
	if got != strings.TrimSpace(got) {
		t.Error("GetSystemPrompt() returned untrimmed content")
	}
}

func TestGetRefinementInstructions(t *testing.T) {
	loader := NewLoader()

	got, err := loader.GetRefinementInstructions()
	if err != nil {
		t.Fatalf("GetRefinementInstructions() error = %v", err)
	}
	if got == "" {
		t.Fatal("GetRefinementInstructions() returned empty instructions")
	}
}
