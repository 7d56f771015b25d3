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
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
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

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Policy Compass API Smoke Test\n")

	// 1. Create a session
	color.Yellow("\n1. Create Session")
	resp, body, err := sendRequest("POST", "/session/v1", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var sessionResp map[string]interface{}
	json.Unmarshal(body, &sessionResp)
	prettyPrint(sessionResp)

	var token string
	if data, ok := sessionResp["data"].(map[string]interface{}); ok {
		token, _ = data["token"].(string)
	}
	if token == "" {
		color.Red("No session token in response, cannot continue")
		os.Exit(1)
	}

	// 2. Upload a small text document
	color.Yellow("\n2. Upload Text Document")
	uploadReq := map[string]interface{}{
		"name":    "smoke_bill",
		"content": "Section 1. This act expands healthcare coverage for uninsured households and funds rural hospitals through a new grant program.",
	}
	resp, body, err = sendRequest("POST", "/document/v1", token, uploadReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var uploadResp map[string]interface{}
	json.Unmarshal(body, &uploadResp)
	prettyPrint(uploadResp)

	// 3. Ask the decoder a question
	color.Yellow("\n3. Decode Document")
	decodeReq := map[string]interface{}{
		"document_name": "smoke_bill",
		"query":         "Who benefits from this bill?",
	}
	resp, body, err = sendRequest("POST", "/decoder/v1", token, decodeReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var decodeResp map[string]interface{}
	json.Unmarshal(body, &decodeResp)
	prettyPrint(decodeResp)

	// 4. Simulate impact for a sample profile
	color.Yellow("\n4. Simulate Impact")
	simulateReq := map[string]interface{}{
		"document_name":  "smoke_bill",
		"zip_code":       "30301",
		"household_size": 4,
		"income":         35000,
		"occupation":     "teacher",
		"insurance":      "none",
		"housing":        "rent",
	}
	resp, body, err = sendRequest("POST", "/simulator/v1", token, simulateReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var simulateResp map[string]interface{}
	json.Unmarshal(body, &simulateResp)
	prettyPrint(simulateResp)

	// 5. Activity summary should now mention the pages above
	color.Yellow("\n5. Activity Summary")
	resp, body, err = sendRequest("GET", "/session/v1/summary/activity", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var summaryResp map[string]interface{}
	json.Unmarshal(body, &summaryResp)
	prettyPrint(summaryResp)

	// 6. Content summary
	color.Yellow("\n6. Content Summary")
	resp, body, err = sendRequest("GET", "/session/v1/summary/content", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var contentResp map[string]interface{}
	json.Unmarshal(body, &contentResp)
	prettyPrint(contentResp)

	// 7. Clear the session
	color.Yellow("\n7. Clear Session")
	resp, body, err = sendRequest("DELETE", "/session/v1", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var clearResp map[string]interface{}
	json.Unmarshal(body, &clearResp)
	prettyPrint(clearResp)

	color.Cyan("\n✅ Smoke test finished")
}
