package region

import "testing"

func TestToRoutingAndPlatform(t *testing.T) {
	tests := []struct {
		server   string
		platform string
		routing  string
	}{
		{"euw", "EUW1", Europe},
		{"eune", "EUN1", Europe},
		{"na", "NA1", Americas},
		{"kr", "KR", Asia},
		{"oce", "OC1", Sea},
		{"lan", "LA1", Americas},
		{"las", "LA2", Americas},
		{"vn", "VN2", Sea},
		{"ru", "RU", Europe},
	}

	for _, tt := range tests {
		if got := ToPlatform(tt.server); got != tt.platform {
			t.Errorf("ToPlatform(%q) = %q, want %q", tt.server, got, tt.platform)
		}
		if got := ToRouting(tt.server); got != tt.routing {
			t.Errorf("ToRouting(%q) = %q, want %q", tt.server, got, tt.routing)
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	for _, server := range []string{"EUW", "Euw", "eUw"} {
		if got := ToPlatform(server); got != "EUW1" {
			t.Errorf("ToPlatform(%q) = %q, want EUW1", server, got)
		}
		if got := ToRouting(server); got != Europe {
			t.Errorf("ToRouting(%q) = %q, want EUROPE", server, got)
		}
	}
}

func TestUnknownServer(t *testing.T) {
	for _, server := range []string{"", "moon", "euw1", "americas"} {
		if got := ToPlatform(server); got != Unknown {
			t.Errorf("ToPlatform(%q) = %q, want UNKNOWN", server, got)
		}
		if got := ToRouting(server); got != Unknown {
			t.Errorf("ToRouting(%q) = %q, want UNKNOWN", server, got)
		}
	}
}

func TestSupportedCoversAllServers(t *testing.T) {
	supported := Supported()
	if len(supported) != len(servers) {
		t.Fatalf("Supported() returned %d servers, want %d", len(supported), len(servers))
	}
	for _, s := range supported {
		if ToPlatform(s) == Unknown || ToRouting(s) == Unknown {
			t.Errorf("supported server %q maps to UNKNOWN", s)
		}
	}
}

func TestDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if ToPlatform("euw") != "EUW1" || ToRouting("euw") != Europe {
			t.Fatal("mapping is not deterministic")
		}
	}
}
