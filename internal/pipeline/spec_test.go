package pipeline

import "testing"

func TestParseStageSpecBasic(t *testing.T) {
	spec, err := ParseStageSpec(0, "type=median:r=2")
	if err != nil {
		t.Fatalf("ParseStageSpec: %v", err)
	}
	if spec.Type != "median" {
		t.Errorf("Type = %q, want median", spec.Type)
	}
	if spec.Params["r"] != "2" {
		t.Errorf("Params[r] = %q, want 2", spec.Params["r"])
	}
}

func TestParseStageSpecCommaSeparated(t *testing.T) {
	spec, err := ParseStageSpec(0, "type=gauss,w=7,h=7,sx=1.5")
	if err != nil {
		t.Fatalf("ParseStageSpec: %v", err)
	}
	if spec.Type != "gauss" || spec.Params["w"] != "7" || spec.Params["sx"] != "1.5" {
		t.Fatalf("unexpected parse: %+v", spec)
	}
}

func TestParseStageSpecIsCaseInsensitive(t *testing.T) {
	spec, err := ParseStageSpec(0, "TYPE=Median:R=3")
	if err != nil {
		t.Fatalf("ParseStageSpec: %v", err)
	}
	if spec.Type != "median" {
		t.Errorf("Type = %q, want median (lowercased)", spec.Type)
	}
	if _, ok := spec.Params["r"]; !ok {
		t.Error("key R should have been lowercased to r")
	}
}

func TestParseStageSpecLowercasesScaleValue(t *testing.T) {
	spec, err := ParseStageSpec(0, "type=step:nsteps=8:scale=Log")
	if err != nil {
		t.Fatalf("ParseStageSpec: %v", err)
	}
	if spec.Params["scale"] != "log" {
		t.Errorf("Params[scale] = %q, want log (lowercased)", spec.Params["scale"])
	}
}

func TestParseStageSpecHelpStopsParsing(t *testing.T) {
	spec, err := ParseStageSpec(0, "type=median:help:r=2")
	if err != nil {
		t.Fatalf("ParseStageSpec: %v", err)
	}
	if !spec.Help {
		t.Fatal("expected Help to be set")
	}
	if _, ok := spec.Params["r"]; ok {
		t.Error("parsing should have stopped at help, r should not be recorded")
	}
}

func TestParseStageSpecRejectsEmptyDescriptor(t *testing.T) {
	if _, err := ParseStageSpec(0, ""); err == nil {
		t.Fatal("expected error for empty descriptor")
	}
}

func TestParseStageSpecRejectsMissingType(t *testing.T) {
	if _, err := ParseStageSpec(0, "r=2"); err == nil {
		t.Fatal("expected error for missing type key")
	}
}

func TestParseStageSpecRejectsKeyWithNoValue(t *testing.T) {
	if _, err := ParseStageSpec(0, "type=median:r"); err == nil {
		t.Fatal("expected error for key with no value")
	}
}
