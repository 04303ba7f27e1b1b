package domain

import "testing"

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func TestNewSweet_DenormalizesCategory(t *testing.T) {
	category := &SweetCategory{ID: 3, Name: "Milk Sweets"}

	sweet, err := NewSweet("  Gulab Jamun  ", category, float64Ptr(12.5), intPtr(0))
	if err != nil {
		t.Fatalf("NewSweet returned error: %v", err)
	}
	if sweet.Name != "Gulab Jamun" {
		t.Fatalf("expected trimmed name, got %q", sweet.Name)
	}
	if sweet.CategoryID != 3 || sweet.CategoryName != "Milk Sweets" {
		t.Fatalf("category not denormalized: %+v", sweet)
	}
	if sweet.Quantity != 0 {
		t.Fatalf("expected zero quantity to be accepted, got %d", sweet.Quantity)
	}
}

func TestNewSweet_Invalid(t *testing.T) {
	category := &SweetCategory{ID: 1, Name: "Dry Fruit Sweets"}

	if _, err := NewSweet("  ", category, float64Ptr(5), intPtr(1)); err == nil {
		t.Fatal("expected error for blank name")
	}
	if _, err := NewSweet("Barfi", nil, float64Ptr(5), intPtr(1)); err == nil {
		t.Fatal("expected error for missing category")
	}
	if _, err := NewSweet("Barfi", category, nil, intPtr(1)); err == nil {
		t.Fatal("expected error for missing price")
	}
	if _, err := NewSweet("Barfi", category, float64Ptr(0), intPtr(1)); err == nil {
		t.Fatal("expected error for zero price")
	}
	if _, err := NewSweet("Barfi", category, float64Ptr(5), intPtr(-1)); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "$2a$10$hash", RoleUser)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	if user.Role != RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.ID != 0 {
		t.Fatalf("expected zero id before persistence, got %d", user.ID)
	}

	if _, err := NewUser("alice", "not-an-email", "hash", RoleUser); err == nil {
		t.Fatal("expected error for bad email")
	}
	if _, err := NewUser("alice", "alice@example.com", "hash", "OWNER"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestRole_CanManageCatalog(t *testing.T) {
	if RoleUser.CanManageCatalog() {
		t.Fatal("USER must not manage the catalog")
	}
	if !RoleAdmin.CanManageCatalog() {
		t.Fatal("ADMIN must manage the catalog")
	}
}
