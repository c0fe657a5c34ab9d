package cmd

import "testing"

func TestRootPersistentFlags(t *testing.T) {
	for _, tt := range []struct {
		flag string
		want string
	}{
		{"location", ""},
		{"modifiable", "true"},
		{"create", "false"},
		{"keystoretype", ""},
		{"password", ""},
	} {
		f := LookupFlag("", tt.flag)
		if f == nil {
			t.Errorf("persistent flag --%s is not registered", tt.flag)
			continue
		}
		if f.DefValue != tt.want {
			t.Errorf("--%s default = %q, want %q", tt.flag, f.DefValue, tt.want)
		}
	}
}

func TestStoreCmdFlags(t *testing.T) {
	for _, flag := range []string{"alias", "type", "algorithm", "params", "token", "clearpassword", "secrethex"} {
		if f := LookupFlag("store", flag); f == nil {
			t.Errorf("store --%s is not registered", flag)
		}
	}
}

func TestRetrieveCmdFlags(t *testing.T) {
	for _, flag := range []string{"alias", "type", "algorithm", "params"} {
		if f := LookupFlag("retrieve", flag); f == nil {
			t.Errorf("retrieve --%s is not registered", flag)
		}
	}
}

func TestRemoveCmdFlags(t *testing.T) {
	for _, flag := range []string{"alias", "type", "algorithm", "params"} {
		if f := LookupFlag("remove", flag); f == nil {
			t.Errorf("remove --%s is not registered", flag)
		}
	}
}

func TestExecuteWithArgsHelp(t *testing.T) {
	if err := ExecuteWithArgs([]string{"--help"}); err != nil {
		t.Errorf("ExecuteWithArgs(--help) returned error: %v", err)
	}
}
