package idl

import "testing"

func TestCaseConversion(t *testing.T) {
	tests := []struct {
		in     string
		pascal string
		camel  string
		snake  string
	}{
		{"widget", "Widget", "widget", "widget"},
		{"Widget", "Widget", "widget", "widget"},
		{"token_account", "TokenAccount", "tokenAccount", "token_account"},
		{"TokenAccount", "TokenAccount", "tokenAccount", "token_account"},
		{"initializeMint", "InitializeMint", "initializeMint", "initialize_mint"},
		{"initialize-mint", "InitializeMint", "initializeMint", "initialize_mint"},
		{"create_account_with_seed", "CreateAccountWithSeed", "createAccountWithSeed", "create_account_with_seed"},
		{"MYAccount", "MyAccount", "myAccount", "my_account"},
		{"initializeMint2", "InitializeMint2", "initializeMint2", "initialize_mint2"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PascalCase(tt.in); got != tt.pascal {
				t.Errorf("PascalCase(%q) = %q, want %q", tt.in, got, tt.pascal)
			}
			if got := CamelCase(tt.in); got != tt.camel {
				t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.camel)
			}
			if got := SnakeCase(tt.in); got != tt.snake {
				t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.snake)
			}
		})
	}
}
