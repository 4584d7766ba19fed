package groups_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/features/groups"
	membershipstore "github.com/dalemusser/pulsecheck/internal/app/store/memberships"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/dalemusser/pulsecheck/internal/testutil"
)

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := groups.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedJSONRequest("POST", "/groups", `{"name":"Engineering"}`, manager)
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var envelope struct {
		Data models.Group `json:"data"`
	}
	if err := json.Unmarshal([]byte(rec.ReadBody()), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Organisation != "acme" {
		t.Errorf("organisation: got %q", envelope.Data.Organisation)
	}
}

func TestHandleDelete_CascadesMemberships(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := f.CreateGroup(ctx, "Engineering", "acme")
	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	f.CreateMembership(ctx, group.ID, alice.ID)

	h := groups.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest("DELETE", "/groups/"+group.ID.Hex(), manager)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	exists, err := membershipstore.New(db).Exists(ctx, group.ID, alice.ID)
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if exists {
		t.Error("membership survived group deletion")
	}
}

func TestHandleAddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := f.CreateGroup(ctx, "Engineering", "acme")
	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")

	h := groups.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedJSONRequest("POST", "/groups/"+group.ID.Hex()+"/members",
		`{"employeeId":"`+alice.ID.Hex()+`"}`, manager)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	h.HandleAddMember(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	// Adding the same employee again conflicts.
	rec = testutil.NewRecorder()
	req = testutil.NewAuthenticatedJSONRequest("POST", "/groups/"+group.ID.Hex()+"/members",
		`{"employeeId":"`+alice.ID.Hex()+`"}`, manager)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	h.HandleAddMember(rec, req)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleAddMember_CrossOrganisation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := f.CreateGroup(ctx, "Engineering", "acme")
	zed := f.CreateEmployee(ctx, "Zed", "zed@other.test", "otherco")

	h := groups.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedJSONRequest("POST", "/groups/"+group.ID.Hex()+"/members",
		`{"employeeId":"`+zed.ID.Hex()+`"}`, manager)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	h.HandleAddMember(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleRemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := f.CreateGroup(ctx, "Engineering", "acme")
	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	m := f.CreateMembership(ctx, group.ID, alice.ID)

	h := groups.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest("DELETE",
		"/groups/"+group.ID.Hex()+"/members/"+m.ID.Hex(), manager)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	req = testutil.WithChiURLParam(req, "membershipID", m.ID.Hex())
	h.HandleRemoveMember(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	exists, err := membershipstore.New(db).Exists(ctx, group.ID, alice.ID)
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if exists {
		t.Error("membership still present after removal")
	}
}

func TestServeMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := f.CreateGroup(ctx, "Engineering", "acme")
	alice := f.CreateEmployee(ctx, "Alice", "alice@acme.test", "acme")
	f.CreateMembership(ctx, group.ID, alice.ID)

	h := groups.NewHandler(db, zap.NewNop())
	manager := testutil.ManagerUser("acme")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest("GET", "/groups/"+group.ID.Hex()+"/members", manager)
	req = testutil.WithChiURLParam(req, "id", group.ID.Hex())
	h.ServeMembers(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var envelope struct {
		Data []struct {
			MembershipID string          `json:"membershipId"`
			Employee     models.Employee `json:"employee"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(rec.ReadBody()), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("got %d members, want 1", len(envelope.Data))
	}
	if envelope.Data[0].Employee.ID != alice.ID {
		t.Errorf("member employee: got %s", envelope.Data[0].Employee.ID.Hex())
	}
	if envelope.Data[0].Employee.Email != "alice@acme.test" {
		t.Errorf("member email: got %q", envelope.Data[0].Employee.Email)
	}
}
