package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mvogel/voliere/internal/db"
	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

const testJWTSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// registerAccount creates an account through the public register endpoint and
// returns its token.
func registerAccount(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test Breeder",
	})
	resp, err := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed: %d", resp.StatusCode)
	}

	var registerResp struct {
		Token string `json:"token"`
	}
	json.NewDecoder(resp.Body).Decode(&registerResp)
	if registerResp.Token == "" {
		t.Fatal("empty token from register")
	}

	return registerResp.Token
}

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	server := newTestServer(t)
	token := registerAccount(t, server, "breeder@example.com")
	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doJSON(t *testing.T, req *http.Request, target any) int {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if target != nil {
		json.NewDecoder(resp.Body).Decode(target)
	}
	return resp.StatusCode
}

func createTestBird(t *testing.T, server *httptest.Server, token, ringNumber string) *model.Bird {
	t.Helper()
	req, _ := authRequest("POST", server.URL+"/api/birds", token, map[string]string{
		"ring_number": ringNumber,
		"species":     "Gouldian Finch",
		"gender":      model.GenderMale,
		"birth_date":  "2024-03-01",
		"origin":      model.OriginPurchased,
	})
	var bird model.Bird
	if status := doJSON(t, req, &bird); status != http.StatusCreated {
		t.Fatalf("creating bird: expected 201, got %d", status)
	}
	return &bird
}

func TestRegisterAndLogin(t *testing.T) {
	server := newTestServer(t)
	registerAccount(t, server, "first@example.com")

	// Duplicate email conflicts.
	body, _ := json.Marshal(map[string]string{
		"email": "first@example.com", "password": "password123", "name": "Dup",
	})
	resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown email: 404 so the client can suggest registering.
	body, _ = json.Marshal(map[string]string{"email": "nobody@example.com", "password": "password123"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Wrong password.
	body, _ = json.Marshal(map[string]string{"email": "first@example.com", "password": "wrong-password"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Correct credentials.
	body, _ = json.Marshal(map[string]string{"email": "first@example.com", "password": "password123"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for valid login, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestShortPasswordRejected(t *testing.T) {
	server := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"email": "short@example.com", "password": "short", "name": "S",
	})
	resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for short password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	if status := doJSON(t, req, nil); status != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", status)
	}

	// The token no longer works.
	req, _ = authRequest("GET", server.URL+"/api/birds", token, nil)
	if status := doJSON(t, req, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", status)
	}
}

func TestBirdsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	bird := createTestBird(t, server, token, "NL-2024-001")

	// Get.
	req, _ := authRequest("GET", server.URL+"/api/birds/"+bird.ID, token, nil)
	var got model.Bird
	if status := doJSON(t, req, &got); status != http.StatusOK {
		t.Fatalf("get bird: expected 200, got %d", status)
	}
	if got.RingNumber != "NL-2024-001" {
		t.Errorf("expected ring number NL-2024-001, got %q", got.RingNumber)
	}

	// Update.
	req, _ = authRequest("PUT", server.URL+"/api/birds/"+bird.ID, token, map[string]string{
		"ring_number": "NL-2024-001",
		"species":     "Gouldian Finch",
		"gender":      model.GenderMale,
		"birth_date":  "2024-03-01",
		"origin":      model.OriginPurchased,
		"status":      model.BirdStatusSold,
	})
	if status := doJSON(t, req, &got); status != http.StatusOK {
		t.Fatalf("update bird: expected 200, got %d", status)
	}
	if got.Status != model.BirdStatusSold {
		t.Errorf("expected status sold, got %q", got.Status)
	}

	// List with status filter.
	req, _ = authRequest("GET", server.URL+"/api/birds?status=sold", token, nil)
	var birds []model.Bird
	if status := doJSON(t, req, &birds); status != http.StatusOK {
		t.Fatalf("list birds: expected 200, got %d", status)
	}
	if len(birds) != 1 {
		t.Errorf("expected 1 sold bird, got %d", len(birds))
	}

	// Delete.
	req, _ = authRequest("DELETE", server.URL+"/api/birds/"+bird.ID, token, nil)
	if status := doJSON(t, req, nil); status != http.StatusOK {
		t.Fatalf("delete bird: expected 200, got %d", status)
	}

	req, _ = authRequest("GET", server.URL+"/api/birds/"+bird.ID, token, nil)
	if status := doJSON(t, req, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", status)
	}
}

func TestBirdValidation(t *testing.T) {
	server, token := setupTestServer(t)

	// Missing ring number.
	req, _ := authRequest("POST", server.URL+"/api/birds", token, map[string]string{
		"species": "Canary", "birth_date": "2024-01-01",
	})
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for missing ring number, got %d", status)
	}

	// Bad gender.
	req, _ = authRequest("POST", server.URL+"/api/birds", token, map[string]string{
		"ring_number": "X-1", "species": "Canary", "gender": "both", "birth_date": "2024-01-01",
	})
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for bad gender, got %d", status)
	}

	// Bad date format.
	req, _ = authRequest("POST", server.URL+"/api/birds", token, map[string]string{
		"ring_number": "X-1", "species": "Canary", "birth_date": "01.02.2024",
	})
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", status)
	}
}

func TestHatchFlow(t *testing.T) {
	server, token := setupTestServer(t)

	male := createTestBird(t, server, token, "M-1")
	female := createTestBird(t, server, token, "F-1")

	// Couple.
	req, _ := authRequest("POST", server.URL+"/api/couples", token, map[string]string{
		"male_id": male.ID, "female_id": female.ID, "season": "2025",
	})
	var couple model.Couple
	if status := doJSON(t, req, &couple); status != http.StatusCreated {
		t.Fatalf("create couple: expected 201, got %d", status)
	}

	// Nest with a plain egg count.
	req, _ = authRequest("POST", server.URL+"/api/nests", token, map[string]any{
		"couple_id": couple.ID, "start_date": "2025-04-01", "egg_count": 3,
	})
	var nest model.Nest
	if status := doJSON(t, req, &nest); status != http.StatusCreated {
		t.Fatalf("create nest: expected 201, got %d", status)
	}

	// Hatching more eggs than the nest has fails.
	req, _ = authRequest("POST", server.URL+"/api/nests/"+nest.ID+"/hatch", token, map[string]any{
		"count": 4, "hatch_date": "2025-04-20",
	})
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for count 4 of 3, got %d", status)
	}

	// Hatch two.
	req, _ = authRequest("POST", server.URL+"/api/nests/"+nest.ID+"/hatch", token, map[string]any{
		"count": 2, "hatch_date": "2025-04-20",
	})
	var result store.HatchResult
	if status := doJSON(t, req, &result); status != http.StatusOK {
		t.Fatalf("hatch: expected 200, got %d", status)
	}
	if len(result.Birds) != 2 {
		t.Fatalf("expected 2 hatched birds, got %d", len(result.Birds))
	}
	if result.Nest.Active {
		t.Error("nest should be inactive after hatch")
	}
	if result.Nest.HatchedCount != 2 {
		t.Errorf("expected hatched count 2, got %d", result.Nest.HatchedCount)
	}
	for _, b := range result.Birds {
		if b.Origin != model.OriginBred {
			t.Errorf("hatched bird origin = %q, want bred", b.Origin)
		}
		if b.FatherID != male.ID || b.MotherID != female.ID {
			t.Error("hatched bird parents do not match the couple")
		}
	}

	// Hatching an inactive nest fails.
	req, _ = authRequest("POST", server.URL+"/api/nests/"+nest.ID+"/hatch", token, map[string]any{
		"count": 1, "hatch_date": "2025-04-21",
	})
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for inactive nest, got %d", status)
	}

	// Offspring query sees the hatched birds.
	req, _ = authRequest("GET", server.URL+"/api/couples/"+couple.ID+"/offspring", token, nil)
	var offspring []model.Bird
	if status := doJSON(t, req, &offspring); status != http.StatusOK {
		t.Fatalf("offspring: expected 200, got %d", status)
	}
	if len(offspring) != 2 {
		t.Errorf("expected 2 offspring, got %d", len(offspring))
	}

	// And the hatched birds show up as children of the male.
	req, _ = authRequest("GET", server.URL+"/api/birds/"+result.Birds[0].ID+"/parents", token, nil)
	var parents model.Parents
	if status := doJSON(t, req, &parents); status != http.StatusOK {
		t.Fatalf("parents: expected 200, got %d", status)
	}
	if parents.Father == nil || parents.Father.ID != male.ID {
		t.Error("expected the couple's male as father")
	}
}

func TestHatchUnknownNest(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/nests/no-such-nest/hatch", token, map[string]any{
		"count": 1,
	})
	if status := doJSON(t, req, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown nest, got %d", status)
	}
}

func TestAviariesAndHealthRecords(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/aviaries", token, map[string]any{
		"name": "Outdoor Flight", "capacity": 12,
	})
	var aviary model.Aviary
	if status := doJSON(t, req, &aviary); status != http.StatusCreated {
		t.Fatalf("create aviary: expected 201, got %d", status)
	}

	// Capacity below 1 is rejected.
	req, _ = authRequest("POST", server.URL+"/api/aviaries", token, map[string]any{
		"name": "Empty", "capacity": 0,
	})
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for zero capacity, got %d", status)
	}

	bird := createTestBird(t, server, token, "AV-1")

	// Assign the bird to the aviary.
	req, _ = authRequest("PUT", server.URL+"/api/birds/"+bird.ID, token, map[string]string{
		"ring_number": "AV-1", "species": "Gouldian Finch", "gender": model.GenderMale,
		"birth_date": "2024-03-01", "origin": model.OriginPurchased, "aviary_id": aviary.ID,
	})
	if status := doJSON(t, req, nil); status != http.StatusOK {
		t.Fatalf("assign aviary: expected 200, got %d", status)
	}

	req, _ = authRequest("GET", server.URL+"/api/aviaries/"+aviary.ID+"/birds", token, nil)
	var birds []model.Bird
	if status := doJSON(t, req, &birds); status != http.StatusOK {
		t.Fatalf("aviary birds: expected 200, got %d", status)
	}
	if len(birds) != 1 {
		t.Errorf("expected 1 bird in aviary, got %d", len(birds))
	}

	// Health record for the bird.
	req, _ = authRequest("POST", server.URL+"/api/health-records", token, map[string]string{
		"bird_id": bird.ID, "date": "2025-06-01", "type": model.HealthTypeCheckup,
		"description": "Annual checkup",
	})
	if status := doJSON(t, req, nil); status != http.StatusCreated {
		t.Fatalf("create health record: expected 201, got %d", status)
	}

	req, _ = authRequest("GET", server.URL+"/api/birds/"+bird.ID+"/health", token, nil)
	var records []model.HealthRecord
	if status := doJSON(t, req, &records); status != http.StatusOK {
		t.Fatalf("bird health: expected 200, got %d", status)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 health record, got %d", len(records))
	}
}

func TestStatsAndExport(t *testing.T) {
	server, token := setupTestServer(t)

	createTestBird(t, server, token, "ST-1")
	createTestBird(t, server, token, "ST-2")

	req, _ := authRequest("GET", server.URL+"/api/stats", token, nil)
	var stats model.Statistics
	if status := doJSON(t, req, &stats); status != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", status)
	}
	if stats.TotalBirds != 2 || stats.ActiveBirds != 2 {
		t.Errorf("expected 2 total and active birds, got %+v", stats)
	}

	// JSON export.
	req, _ = authRequest("GET", server.URL+"/api/export", token, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("export request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	var snapshot struct {
		Birds []model.Bird `json:"birds"`
	}
	json.NewDecoder(resp.Body).Decode(&snapshot)
	resp.Body.Close()
	if len(snapshot.Birds) != 2 {
		t.Errorf("expected 2 birds in export, got %d", len(snapshot.Birds))
	}

	// Text export.
	req, _ = authRequest("GET", server.URL+"/api/export?format=text", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("text export: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	resp.Body.Close()

	// Unknown format.
	req, _ = authRequest("GET", server.URL+"/api/export?format=xml", token, nil)
	if status := doJSON(t, req, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown format, got %d", status)
	}
}

func TestAccountIsolation(t *testing.T) {
	server := newTestServer(t)
	tokenA := registerAccount(t, server, "alice@example.com")
	tokenB := registerAccount(t, server, "bob@example.com")

	bird := createTestBird(t, server, tokenA, "ISO-1")

	// The other account cannot see it.
	req, _ := authRequest("GET", server.URL+"/api/birds/"+bird.ID, tokenB, nil)
	if status := doJSON(t, req, nil); status != http.StatusNotFound {
		t.Errorf("expected 404 for foreign bird, got %d", status)
	}

	req, _ = authRequest("GET", server.URL+"/api/birds", tokenB, nil)
	var birds []model.Bird
	if status := doJSON(t, req, &birds); status != http.StatusOK {
		t.Fatalf("list birds: expected 200, got %d", status)
	}
	if len(birds) != 0 {
		t.Errorf("expected empty list for other account, got %d birds", len(birds))
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/birds", "/api/couples", "/api/stats", "/api/export"} {
		resp, _ := http.Get(server.URL + path)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 for unauthenticated request, got %d", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestListEndpointsReturnEmptyArrays(t *testing.T) {
	server, token := setupTestServer(t)

	for _, path := range []string{
		"/api/birds", "/api/couples", "/api/nests", "/api/eggs",
		"/api/aviaries", "/api/health-records",
	} {
		req, _ := authRequest("GET", server.URL+path, token, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
			continue
		}
		if got := buf.String(); got != "[]\n" {
			t.Errorf("%s: expected empty JSON array, got %s", path, got)
		}
	}
}

func TestChangePassword(t *testing.T) {
	server, token := setupTestServer(t)

	// Wrong current password.
	req, _ := authRequest("PUT", server.URL+"/api/auth/password", token, map[string]string{
		"current_password": "wrong", "new_password": "newpassword123",
	})
	if status := doJSON(t, req, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong current password, got %d", status)
	}

	req, _ = authRequest("PUT", server.URL+"/api/auth/password", token, map[string]string{
		"current_password": "password123", "new_password": "newpassword123",
	})
	if status := doJSON(t, req, nil); status != http.StatusOK {
		t.Fatalf("change password: expected 200, got %d", status)
	}

	// Old password no longer works, new one does.
	body, _ := json.Marshal(map[string]string{"email": "breeder@example.com", "password": "password123"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with old password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	body, _ = json.Marshal(map[string]string{"email": "breeder@example.com", "password": "newpassword123"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with new password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMe(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/auth/me", token, nil)
	var user model.User
	if status := doJSON(t, req, &user); status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if user.Email != "breeder@example.com" {
		t.Errorf("expected breeder@example.com, got %q", user.Email)
	}
}

func TestCouplesNestsByID(t *testing.T) {
	server, token := setupTestServer(t)

	male := createTestBird(t, server, token, "P-1")
	female := createTestBird(t, server, token, "P-2")

	req, _ := authRequest("POST", server.URL+"/api/couples", token, map[string]string{
		"male_id": male.ID, "female_id": female.ID, "season": "2025",
	})
	var couple model.Couple
	if status := doJSON(t, req, &couple); status != http.StatusCreated {
		t.Fatalf("create couple: expected 201, got %d", status)
	}

	for i := 1; i <= 2; i++ {
		req, _ = authRequest("POST", server.URL+"/api/nests", token, map[string]any{
			"couple_id": couple.ID, "start_date": fmt.Sprintf("2025-0%d-01", i), "egg_count": 2,
		})
		if status := doJSON(t, req, nil); status != http.StatusCreated {
			t.Fatalf("create nest %d: expected 201, got %d", i, status)
		}
	}

	req, _ = authRequest("GET", server.URL+"/api/couples/"+couple.ID+"/nests", token, nil)
	var nests []model.Nest
	if status := doJSON(t, req, &nests); status != http.StatusOK {
		t.Fatalf("couple nests: expected 200, got %d", status)
	}
	if len(nests) != 2 {
		t.Fatalf("expected 2 nests, got %d", len(nests))
	}
	// Newest first.
	if !nests[0].StartDate.After(nests[1].StartDate) {
		t.Error("expected nests ordered newest first")
	}
}
