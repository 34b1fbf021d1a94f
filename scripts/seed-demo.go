// Seeds a local server with demo users, a shared dashboard and a handful
// of todos. Run it against a freshly started server:
//
//	go run scripts/seed-demo.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const apiBase = "http://localhost:8080/api/v1"

type user struct {
	Username string
	Email    string
	Password string
	Token    string
}

type registerResponse struct {
	Data struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Tokens struct {
			Access string `json:"access"`
		} `json:"tokens"`
	} `json:"data"`
}

type dashboardResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type tagResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func call(method, path, token string, payload interface{}, out interface{}) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(method, apiBase+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, raw)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func registerUser(u *user) error {
	var result registerResponse
	err := call(http.MethodPost, "/auth/register", "", map[string]string{
		"username": u.Username,
		"email":    u.Email,
		"password": u.Password,
	}, &result)
	if err != nil {
		return err
	}
	u.Token = result.Data.Tokens.Access
	fmt.Printf("registered %s\n", u.Username)
	return nil
}

func main() {
	alice := &user{Username: "alice", Email: "alice@example.com", Password: "Sup3rSecret!"}
	bob := &user{Username: "bob", Email: "bob@example.com", Password: "Sup3rSecret!"}

	for _, u := range []*user{alice, bob} {
		if err := registerUser(u); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}

	var dashboard dashboardResponse
	err := call(http.MethodPost, "/dashboards", alice.Token, map[string]interface{}{
		"title":       "Team Sprint",
		"description": "demo board seeded for local development",
	}, &dashboard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	dashboardID := dashboard.Data.ID
	fmt.Printf("created dashboard %s\n", dashboardID)

	err = call(http.MethodPost, "/dashboards/"+dashboardID+"/members", alice.Token, map[string]string{
		"email": bob.Email,
		"role":  "editor",
	}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("added bob as editor")

	var urgent tagResponse
	err = call(http.MethodPost, "/dashboards/"+dashboardID+"/tags", alice.Token, map[string]string{
		"name":  "urgent",
		"color": "#FF0000",
	}, &urgent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	todos := []map[string]interface{}{
		{"title": "Write the sprint review", "priority": 4, "tagIds": []string{urgent.Data.ID}},
		{"title": "Fix the flaky login test", "priority": 5, "tagIds": []string{urgent.Data.ID}},
		{"title": "Water the office plants", "priority": 1},
	}
	for _, todo := range todos {
		if err := call(http.MethodPost, "/dashboards/"+dashboardID+"/todos", bob.Token, todo, nil); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created todo %q\n", todo["title"])
	}

	fmt.Println("done")
}
