package request

import "testing"

func TestTransitionServiceRequest_ResolveStatus(t *testing.T) {
	r := TransitionServiceRequest{Status: " Orçamento Enviado "}
	if got := r.ResolveStatus(); got != "Orçamento Enviado" {
		t.Fatalf("expected trimmed status, got %q", got)
	}

	r2 := TransitionServiceRequest{Status: "   "}
	if got := r2.ResolveStatus(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
