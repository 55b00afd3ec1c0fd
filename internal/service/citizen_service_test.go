package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/night-assist/assist-service/internal/auth"
)

func newCitizenFixture(t *testing.T) (*CitizenService, *fakeCitizenRepo, string) {
	t.Helper()
	citizens := newFakeCitizenRepo()
	authSvc := newAuthService(citizens, newFakeAdminRepo())
	svc := NewCitizenService(citizens, noCache(), authSvc)

	registered, err := authSvc.RegisterCitizen(context.Background(), signupInput())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return svc, citizens, registered.ID
}

func TestCitizenGet(t *testing.T) {
	svc, _, id := newCitizenFixture(t)

	citizen, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if citizen.Email != "jane@example.com" {
		t.Errorf("unexpected email '%s'", citizen.Email)
	}

	_, err = svc.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected not found")
	}
	expectStatus(t, err, http.StatusNotFound)
}

func TestCitizenPatchAppliesAllowedFields(t *testing.T) {
	svc, citizens, id := newCitizenFixture(t)

	affected, err := svc.Patch(context.Background(), id, []FieldUpdate{
		{PropName: "name", Value: "Jane Smith"},
		{PropName: "city", Value: "Assen"},
	})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row affected, got %d", affected)
	}

	stored := citizens.citizens[id]
	if stored.Name != "Jane Smith" {
		t.Errorf("expected patched name, got '%s'", stored.Name)
	}
	if stored.Address.City != "Assen" {
		t.Errorf("expected patched city, got '%s'", stored.Address.City)
	}
}

func TestCitizenPatchRehashesPassword(t *testing.T) {
	svc, citizens, id := newCitizenFixture(t)

	if _, err := svc.Patch(context.Background(), id, []FieldUpdate{
		{PropName: "password", Value: "newpass"},
	}); err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}

	stored := citizens.citizens[id]
	if stored.PasswordHash == "newpass" {
		t.Fatal("patched password must be stored hashed")
	}
	if err := auth.ComparePassword(stored.PasswordHash, "newpass"); err != nil {
		t.Errorf("patched password should verify: %v", err)
	}
}

func TestCitizenPatchRejectsUnknownField(t *testing.T) {
	svc, citizens, id := newCitizenFixture(t)

	_, err := svc.Patch(context.Background(), id, []FieldUpdate{
		{PropName: "name", Value: "Changed"},
		{PropName: "isAdmin", Value: true},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	expectStatus(t, err, http.StatusBadRequest)

	// the whole patch is rejected, nothing is applied
	if citizens.citizens[id].Name != "Jane Doe" {
		t.Error("a rejected patch must not apply any field")
	}
}

func TestCitizenPatchMissingRecord(t *testing.T) {
	svc, _, _ := newCitizenFixture(t)

	_, err := svc.Patch(context.Background(), "missing", []FieldUpdate{
		{PropName: "name", Value: "Nobody"},
	})
	if err == nil {
		t.Fatal("expected not found")
	}
	expectStatus(t, err, http.StatusNotFound)
}

func TestCitizenDeleteIsIdempotent(t *testing.T) {
	svc, citizens, id := newCitizenFixture(t)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := citizens.citizens[id]; ok {
		t.Fatal("citizen should be gone")
	}
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Errorf("deleting an absent citizen should succeed: %v", err)
	}
}

func TestCitizenListPagination(t *testing.T) {
	citizens := newFakeCitizenRepo()
	authSvc := newAuthService(citizens, newFakeAdminRepo())
	svc := NewCitizenService(citizens, noCache(), authSvc)

	for i := 0; i < 5; i++ {
		input := signupInput()
		input.Email = string(rune('a'+i)) + "@example.com"
		input.Phone = string(rune('0' + i))
		input.DeviceID = "device-" + string(rune('a'+i))
		if _, err := authSvc.RegisterCitizen(context.Background(), input); err != nil {
			t.Fatalf("signup %d failed: %v", i, err)
		}
	}

	page, total, err := svc.List(context.Background(), pageRequest(2, 2))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 items on page 2, got %d", len(page))
	}

	all, _, err := svc.List(context.Background(), pageRequest(0, 0))
	if err != nil {
		t.Fatalf("unpaginated List returned error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("absent pagination should return everything, got %d", len(all))
	}
}
