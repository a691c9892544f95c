package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		color.Red("API_TOKEN is not set")
		os.Exit(1)
	}
	sessionID := "smoke-test"

	color.Cyan("🚀 Starting AI Orchestrator API smoke test\n")

	queries := []struct {
		label   string
		message string
	}{
		{"Greeting (conversation intent)", "bonjour"},
		{"Document search", "trouve le rapport financier de mars"},
		{"Follow-up analysis", "résume le premier document"},
		{"App command", "ouvre les ordinateurs disponibles"},
	}
	for i, q := range queries {
		color.Yellow("\n%d. %s", i+1, q.label)
		resp, body, err := sendRequest("POST", "/ai/v1/chat", token, map[string]string{
			"session_id": sessionID,
			"message":    q.message,
		})
		if err != nil {
			color.Red("Failed: %v", err)
			continue
		}
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n5. Conversation history")
	resp, body, err := sendRequest("GET", "/ai/v1/conversations/"+sessionID, token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n6. Provider status")
	resp, body, err = sendRequest("GET", "/ai/v1/providers", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n7. Statistics")
	resp, body, err = sendRequest("GET", "/ai/v1/statistics", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n8. Delete session")
	resp, body, err = sendRequest("DELETE", "/ai/v1/sessions/"+sessionID, token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Cyan("\n✅ Smoke test finished")
}
