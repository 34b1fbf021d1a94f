package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-app/taskboard/internal/testutil"
)

type memberPayload struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

func TestMemberHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	invitee, inviteeToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	dashboard := createDashboard(t, ts, ownerToken, map[string]interface{}{"title": "Team Board"})
	otherDashboard := createDashboard(t, ts, ownerToken, map[string]interface{}{"title": "Other Board"})
	membersURL := ts.APIURL("/dashboards/" + dashboard.ID + "/members")

	var membership memberPayload

	t.Run("owner invites by email", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPost, membersURL,
			map[string]string{"email": invitee.Email, "role": "editor"}, ownerToken)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		testutil.DecodeSuccess(t, resp, &membership)
		assert.Equal(t, "editor", membership.Role)
		assert.Equal(t, invitee.Username, membership.User.Username)
	})

	t.Run("duplicate invite conflicts", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPost, membersURL,
			map[string]string{"email": invitee.Email, "role": "viewer"}, ownerToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusConflict, "already has access")
	})

	t.Run("unknown email reads as not found", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPost, membersURL,
			map[string]string{"email": "nobody@example.com", "role": "viewer"}, ownerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("owner role is not assignable", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPost, membersURL,
			map[string]string{"email": invitee.Email, "role": "owner"}, ownerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("non-owner cannot invite", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPost, membersURL,
			map[string]string{"email": "anyone@example.com", "role": "viewer"}, inviteeToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "only the owner")
	})

	t.Run("lists the owner and the invitee", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, membersURL, nil, ownerToken)
		defer resp.Body.Close()

		var data struct {
			Members []memberPayload `json:"members"`
		}
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.DecodeSuccess(t, resp, &data)
		require.Len(t, data.Members, 2)

		roles := map[string]bool{}
		for _, member := range data.Members {
			roles[member.Role] = true
		}
		assert.True(t, roles["owner"])
		assert.True(t, roles["editor"])
	})

	t.Run("owner re-roles the invitee", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPut, membersURL+"/"+membership.ID,
			map[string]string{"role": "viewer"}, ownerToken)
		defer resp.Body.Close()

		var updated memberPayload
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.DecodeSuccess(t, resp, &updated)
		assert.Equal(t, "viewer", updated.Role)
	})

	t.Run("member id under another dashboard reads as not found", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodPut,
			ts.APIURL("/dashboards/"+otherDashboard.ID+"/members/"+membership.ID),
			map[string]string{"role": "viewer"}, ownerToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "member not found")
	})

	t.Run("the owner row is protected", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodGet, membersURL, nil, ownerToken)
		var data struct {
			Members []memberPayload `json:"members"`
		}
		testutil.DecodeSuccess(t, resp, &data)
		resp.Body.Close()

		var ownerRow memberPayload
		for _, member := range data.Members {
			if member.Role == "owner" {
				ownerRow = member
			}
		}
		require.NotEmpty(t, ownerRow.ID)

		reRole := testutil.DoAuthenticated(t, http.MethodPut, membersURL+"/"+ownerRow.ID,
			map[string]string{"role": "viewer"}, ownerToken)
		defer reRole.Body.Close()
		testutil.AssertStatusCode(t, reRole, http.StatusForbidden)

		remove := testutil.DoAuthenticated(t, http.MethodDelete, membersURL+"/"+ownerRow.ID, nil, ownerToken)
		defer remove.Body.Close()
		testutil.AssertStatusCode(t, remove, http.StatusForbidden)
	})

	t.Run("owner removes the invitee", func(t *testing.T) {
		resp := testutil.DoAuthenticated(t, http.MethodDelete, membersURL+"/"+membership.ID, nil, ownerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		again := testutil.DoAuthenticated(t, http.MethodDelete, membersURL+"/"+membership.ID, nil, ownerToken)
		defer again.Body.Close()
		testutil.AssertStatusCode(t, again, http.StatusNotFound)
	})
}
