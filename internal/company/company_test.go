package company

import "testing"

func TestSettingsTableName(t *testing.T) {
	if (Settings{}).TableName() != "company_settings" {
		t.Fatalf("expected table name company_settings, got %q", (Settings{}).TableName())
	}
}
