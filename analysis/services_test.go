package analysis

import "testing"

func TestSystemServiceGate(t *testing.T) {
	t.Run("no extends clause", func(t *testing.T) {
		result := analyzeSnippet(t, `class Foo {
    public void onStart() {}
}
`, "Foo")
		if result.SystemService != nil {
			t.Errorf("expected no summary, got %+v", result.SystemService)
		}
	})

	t.Run("extends SystemService", func(t *testing.T) {
		result := analyzeSnippet(t, `class Foo extends SystemService {
    public void onStart() {}
}
`, "Foo")
		svc := result.SystemService
		if svc == nil {
			t.Fatal("expected a summary")
		}
		if svc.ClassName != "Foo" {
			t.Errorf("class: got %q", svc.ClassName)
		}
		if svc.OnStartLine != 2 {
			t.Errorf("onStart line: got %d, want 2", svc.OnStartLine)
		}
		if len(svc.BootPhaseLine) != 0 || len(svc.Services) != 0 {
			t.Errorf("expected empty boot-phase and service lists: %+v", svc)
		}
	})
}

func TestSystemServiceSummaryDetails(t *testing.T) {
	source := `package com.android.server.power;

public final class PowerService extends SystemService {
    public void onStart() {
        publishBinderService("power", mBinder);
    }

    public void onBootPhase(int phase) {
    }

    void register() {
        ServiceManager.addService(Context.POWER_SERVICE, mBinder);
    }
}
`
	result := analyzeSnippet(t, source, "PowerService")
	svc := result.SystemService
	if svc == nil {
		t.Fatal("expected a summary")
	}

	if svc.OnStartLine != 4 {
		t.Errorf("onStart line: got %d, want 4", svc.OnStartLine)
	}
	if len(svc.BootPhaseLine) != 1 || svc.BootPhaseLine[0] != 8 {
		t.Errorf("boot phases: got %v, want [8]", svc.BootPhaseLine)
	}

	if len(svc.Services) != 2 {
		t.Fatalf("services: got %v, want 2 registrations", svc.Services)
	}
	if svc.Services[0].Name != "power" || svc.Services[0].Line != 5 {
		t.Errorf("first registration: got %+v", svc.Services[0])
	}
	if svc.Services[1].Name != UnknownServiceName {
		t.Errorf("constant-name registration: got %q, want %q", svc.Services[1].Name, UnknownServiceName)
	}
}

func TestSystemServiceMultipleBootPhases(t *testing.T) {
	source := `class WatchdogService extends SystemService {
    public void onBootPhase(int phase) {
    }

    void onBootPhase() {
    }
}
`
	result := analyzeSnippet(t, source, "WatchdogService")
	svc := result.SystemService
	if svc == nil {
		t.Fatal("expected a summary")
	}
	if svc.OnStartLine != 0 {
		t.Errorf("onStart line: got %d, want 0 (absent)", svc.OnStartLine)
	}
	if len(svc.BootPhaseLine) != 2 {
		t.Errorf("boot phases: got %v, want two entries", svc.BootPhaseLine)
	}
	if len(svc.BootPhaseLine) == 2 && svc.BootPhaseLine[0] > svc.BootPhaseLine[1] {
		t.Errorf("boot phases out of order: %v", svc.BootPhaseLine)
	}
}
