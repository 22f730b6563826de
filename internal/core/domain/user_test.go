package domain

import "testing"

func TestUser_ToSummary(t *testing.T) {
	user := &User{
		ID:           "user-1",
		Email:        "a@b.c",
		PasswordHash: "secret-hash",
		Name:         "Alice",
		Role:         RoleMember,
		Active:       true,
	}

	summary := user.ToSummary()

	if summary.ID != user.ID || summary.Email != user.Email || summary.Name != user.Name {
		t.Error("expected summary to mirror user fields")
	}
	if summary.Role != RoleMember {
		t.Errorf("expected member role, got %s", summary.Role)
	}
}

func TestUser_IsAdmin(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	member := &User{Role: RoleMember}

	if !admin.IsAdmin() {
		t.Error("expected admin to be admin")
	}
	if member.IsAdmin() {
		t.Error("expected member to not be admin")
	}
}

func TestUser_CanAccessProject(t *testing.T) {
	owner := &User{ID: "user-1", Role: RoleMember}
	other := &User{ID: "user-2", Role: RoleMember}
	admin := &User{ID: "user-3", Role: RoleAdmin}
	project := &Project{ID: "proj-1", UserID: "user-1"}

	if !owner.CanAccessProject(project) {
		t.Error("expected owner access")
	}
	if other.CanAccessProject(project) {
		t.Error("expected non-owner to be denied")
	}
	if !admin.CanAccessProject(project) {
		t.Error("expected admin access")
	}
	if owner.CanAccessProject(nil) {
		t.Error("expected nil project to be denied")
	}
}
