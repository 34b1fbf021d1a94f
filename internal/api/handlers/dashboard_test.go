package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-app/taskboard/internal/testutil"
)

type dashboardPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
	IsPublic    bool   `json:"isPublic"`
	PublicLink  string `json:"publicLink"`
}

func createDashboard(t *testing.T, ts *testutil.TestServer, token string, body map[string]interface{}) dashboardPayload {
	t.Helper()

	resp := testutil.DoAuthenticated(t, http.MethodPost, ts.APIURL("/dashboards"), body, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var dashboard dashboardPayload
	testutil.DecodeSuccess(t, resp, &dashboard)
	return dashboard
}

func TestDashboardHandler_CreateAndList(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("creates a dashboard", func(t *testing.T) {
		dashboard := createDashboard(t, ts, token, map[string]interface{}{
			"title":       "Chores",
			"description": "household chores",
		})
		assert.Equal(t, "Chores", dashboard.Title)
		assert.Equal(t, user.ID.String(), dashboard.OwnerID)
		assert.False(t, dashboard.IsPublic)
		assert.NotEmpty(t, dashboard.PublicLink)
	})

	t.Run("lists owned dashboards", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, ts.APIURL("/dashboards"), nil, token)
		defer resp.Body.Close()

		var data struct {
			Dashboards []dashboardPayload `json:"dashboards"`
		}
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.DecodeSuccess(t, resp, &data)
		require.Len(t, data.Dashboards, 1)
		assert.Equal(t, "Chores", data.Dashboards[0].Title)
	})

	t.Run("rejects a missing title", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPost, ts.APIURL("/dashboards"), map[string]interface{}{
			"description": "no title",
		}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, ts.APIURL("/dashboards"), nil, "")
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestDashboardHandler_Permissions(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	viewer, viewerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	dashboard := createDashboard(t, ts, ownerToken, map[string]interface{}{"title": "Private Board"})

	addResp := testutil.DoAuthenticated(t, http.MethodPost,
		ts.APIURL("/dashboards/"+dashboard.ID+"/members"),
		map[string]string{"email": viewer.Email, "role": "viewer"}, ownerToken)
	addResp.Body.Close()
	require.Equal(t, http.StatusCreated, addResp.StatusCode)

	dashboardURL := ts.APIURL("/dashboards/" + dashboard.ID)

	t.Run("owner reads", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, dashboardURL, nil, ownerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("viewer reads", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, dashboardURL, nil, viewerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("stranger denied a private dashboard", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, dashboardURL, nil, strangerToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "access denied")
	})

	t.Run("viewer cannot update", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPut, dashboardURL,
			map[string]interface{}{"title": "Hijacked"}, viewerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("making it public opens reads but not writes", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPut, dashboardURL,
			map[string]interface{}{"isPublic": true}, ownerToken)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = testutil.DoAuthenticated(t, http.MethodGet, dashboardURL, nil, strangerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		writeResp := testutil.DoAuthenticated(t, http.MethodPut, dashboardURL,
			map[string]interface{}{"title": "Hijacked"}, strangerToken)
		defer writeResp.Body.Close()
		testutil.AssertStatusCode(t, writeResp, http.StatusForbidden)
	})

	t.Run("unknown dashboard id", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, ts.APIURL("/dashboards/"+uuid.NewString()), nil, ownerToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "dashboard not found")
	})

	t.Run("malformed dashboard id reads as not found", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, ts.APIURL("/dashboards/not-a-uuid"), nil, ownerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("only the owner deletes", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodDelete, dashboardURL, nil, viewerToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "only the owner")

		ownerResp := testutil.DoAuthenticated(t, http.MethodDelete, dashboardURL, nil, ownerToken)
		defer ownerResp.Body.Close()
		testutil.AssertStatusCode(t, ownerResp, http.StatusOK)

		goneResp := testutil.DoAuthenticated(t, http.MethodGet, dashboardURL, nil, ownerToken)
		defer goneResp.Body.Close()
		testutil.AssertStatusCode(t, goneResp, http.StatusNotFound)
	})
}

func TestDashboardHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	dashboard := createDashboard(t, ts, token, map[string]interface{}{
		"title":       "Before",
		"description": "old",
	})

	resp := testutil.DoAuthenticated(t, http.MethodPut, ts.APIURL("/dashboards/"+dashboard.ID),
		map[string]interface{}{"title": "After"}, token)
	defer resp.Body.Close()

	var updated dashboardPayload
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.DecodeSuccess(t, resp, &updated)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "old", updated.Description, "untouched fields survive")
}
